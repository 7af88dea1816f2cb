package config

// LLMEvaluationConfig controls the LLM judge source.
type LLMEvaluationConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Provider selects the backend: "anthropic", "openai", or
	// "openai-compatible" (requires BaseURL).
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKeyEnv names the environment variable holding the API key, so the
	// key itself never lands in the config file.
	APIKeyEnv string `yaml:"api_key_env" mapstructure:"api_key_env"`

	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutMs int `yaml:"timeout_ms" mapstructure:"timeout_ms"`

	// TriggerHooks lists the hook types that invoke the judge.
	TriggerHooks []string `yaml:"trigger_hooks,omitempty" mapstructure:"trigger_hooks"`
}

// DefaultLLMEvaluationConfig returns a disabled judge wired for Anthropic.
func DefaultLLMEvaluationConfig() LLMEvaluationConfig {
	return LLMEvaluationConfig{
		Enabled:      false,
		Provider:     "anthropic",
		Model:        "claude-3-5-haiku-20241022",
		APIKeyEnv:    "ANTHROPIC_API_KEY",
		MaxTokens:    512,
		TimeoutMs:    10000,
		TriggerHooks: []string{"PreToolUse", "PermissionRequest"},
	}
}

// Triggers reports whether the judge is configured to run for the hook.
func (c LLMEvaluationConfig) Triggers(hook string) bool {
	for _, h := range c.TriggerHooks {
		if h == hook {
			return true
		}
	}
	return false
}
