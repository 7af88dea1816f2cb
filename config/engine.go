package config

// EngineConfig controls decision engine behavior.
type EngineConfig struct {
	// ShortCircuit selects sequential evaluation that stops at the first
	// deny/block. Parallel evaluation runs every source concurrently.
	ShortCircuit *bool `yaml:"short_circuit,omitempty" mapstructure:"short_circuit"`

	// DefaultDecision applies when every source abstains.
	DefaultDecision string `yaml:"default_decision" mapstructure:"default_decision"`

	// TimeoutMs bounds a single source evaluation.
	TimeoutMs int `yaml:"timeout_ms" mapstructure:"timeout_ms"`

	// Sources adjusts individual sources by name.
	Sources map[string]SourceOverrideConfig `yaml:"sources,omitempty" mapstructure:"sources"`
}

// SourceOverrideConfig adjusts one source's enabled state or priority.
type SourceOverrideConfig struct {
	Enabled  *bool `yaml:"enabled,omitempty" mapstructure:"enabled"`
	Priority *int  `yaml:"priority,omitempty" mapstructure:"priority"`
}

// DefaultEngineConfig returns the engine defaults: sequential short-circuit
// evaluation, allow by default, 5 seconds per source.
func DefaultEngineConfig() EngineConfig {
	shortCircuit := true
	return EngineConfig{
		ShortCircuit:    &shortCircuit,
		DefaultDecision: "allow",
		TimeoutMs:       5000,
	}
}

// ShortCircuitEnabled resolves the tri-state flag; unset means enabled.
func (c EngineConfig) ShortCircuitEnabled() bool {
	return c.ShortCircuit == nil || *c.ShortCircuit
}
