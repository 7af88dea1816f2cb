package config

// Over-budget actions. Block stops the action; warn and notify let it
// proceed with a warning attached.
const (
	OverBudgetWarn   = "warn"
	OverBudgetBlock  = "block"
	OverBudgetNotify = "notify"
)

// CostControlsConfig caps USD spend per session, day and month. A nil
// budget means no limit at that scope.
type CostControlsConfig struct {
	Enabled          bool      `yaml:"enabled" mapstructure:"enabled"`
	SessionBudgetUSD *float64  `yaml:"session_budget_usd,omitempty" mapstructure:"session_budget_usd"`
	DailyBudgetUSD   *float64  `yaml:"daily_budget_usd,omitempty" mapstructure:"daily_budget_usd"`
	MonthlyBudgetUSD *float64  `yaml:"monthly_budget_usd,omitempty" mapstructure:"monthly_budget_usd"`
	AlertThresholds  []float64 `yaml:"alert_thresholds,omitempty" mapstructure:"alert_thresholds"`
	OverBudgetAction string    `yaml:"over_budget_action" mapstructure:"over_budget_action"`
}

// DefaultCostControlsConfig returns disabled cost controls with the common
// alert ladder.
func DefaultCostControlsConfig() CostControlsConfig {
	return CostControlsConfig{
		Enabled:          false,
		AlertThresholds:  []float64{0.5, 0.8, 0.95},
		OverBudgetAction: OverBudgetWarn,
	}
}
