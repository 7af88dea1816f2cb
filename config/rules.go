package config

// RulesConfig holds the static rule sets evaluated by the built-in matcher.
type RulesConfig struct {
	Rules []RuleConfig `yaml:"rules,omitempty" mapstructure:"rules"`
}

// RuleConfig declares one static rule. All non-empty condition fields must
// match for the rule to fire; the first firing rule wins.
type RuleConfig struct {
	ID      string `yaml:"id" mapstructure:"id"`
	Name    string `yaml:"name,omitempty" mapstructure:"name"`
	RuleSet string `yaml:"rule_set,omitempty" mapstructure:"rule_set"`
	Enabled *bool  `yaml:"enabled,omitempty" mapstructure:"enabled"`

	// Conditions. HookTypes and Tools match by exact name or glob pattern;
	// CommandPattern is a regular expression over the bash command; Paths
	// are gitignore-style patterns over the file path the tool touches.
	HookTypes       []string `yaml:"hook_types,omitempty" mapstructure:"hook_types"`
	Tools           []string `yaml:"tools,omitempty" mapstructure:"tools"`
	CommandPattern  string   `yaml:"command_pattern,omitempty" mapstructure:"command_pattern"`
	Paths           []string `yaml:"paths,omitempty" mapstructure:"paths"`
	PermissionModes []string `yaml:"permission_modes,omitempty" mapstructure:"permission_modes"`

	Action RuleActionConfig `yaml:"action" mapstructure:"action"`
}

// RuleActionConfig is what a firing rule does: one of allow, deny, block,
// continue, modify, warn, or prompt.
type RuleActionConfig struct {
	Type          string         `yaml:"type" mapstructure:"type"`
	Reason        string         `yaml:"reason,omitempty" mapstructure:"reason"`
	SystemMessage string         `yaml:"system_message,omitempty" mapstructure:"system_message"`
	Modifications map[string]any `yaml:"modifications,omitempty" mapstructure:"modifications"`
}

// IsEnabled resolves the tri-state flag; unset means enabled.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}
