package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath is where the CLI looks for its configuration unless
// told otherwise.
const DefaultConfigPath = ".warden/config.yaml"

// Config is the root CLI configuration.
type Config struct {
	Engine       EngineConfig        `yaml:"engine" mapstructure:"engine"`
	Rules        RulesConfig         `yaml:"rules" mapstructure:"rules"`
	TestGate     TestGateConfig      `yaml:"test_gate" mapstructure:"test_gate"`
	CostControls CostControlsConfig  `yaml:"cost_controls" mapstructure:"cost_controls"`
	CostStore    CostStoreConfig     `yaml:"cost_store" mapstructure:"cost_store"`
	LLM          LLMEvaluationConfig `yaml:"llm" mapstructure:"llm"`
	Pricing      PricingConfig       `yaml:"pricing" mapstructure:"pricing"`
	StateDir     string              `yaml:"state_dir" mapstructure:"state_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Engine:       DefaultEngineConfig(),
		Rules:        RulesConfig{},
		TestGate:     DefaultTestGateConfig(),
		CostControls: DefaultCostControlsConfig(),
		CostStore:    DefaultCostStoreConfig(),
		LLM:          DefaultLLMEvaluationConfig(),
		Pricing:      DefaultPricingConfig(),
		StateDir:     ".warden/state",
	}
}

// GetConfigPath resolves the config file location: an explicit path wins,
// then the working directory, then the user's home directory.
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, DefaultConfigPath)
	}
	return DefaultConfigPath
}

// Load reads the configuration file at path on top of the defaults. A
// missing file is not an error; the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
