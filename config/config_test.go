package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Engine.ShortCircuitEnabled())
	assert.Equal(t, "allow", cfg.Engine.DefaultDecision)
	assert.Equal(t, 5000, cfg.Engine.TimeoutMs)
	assert.False(t, cfg.TestGate.Enabled)
	assert.Equal(t, ".warden/tests-passed", cfg.TestGate.MarkerPath)
	assert.Equal(t, 900, cfg.TestGate.MaxAgeSeconds)
	assert.False(t, cfg.CostControls.Enabled)
	assert.Equal(t, OverBudgetWarn, cfg.CostControls.OverBudgetAction)
	assert.Equal(t, "sqlite", cfg.CostStore.Type)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, ".warden/state", cfg.StateDir)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "allow", cfg.Engine.DefaultDecision)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
engine:
  short_circuit: false
  default_decision: deny
  timeout_ms: 2500
  sources:
    llm:
      enabled: false
test_gate:
  enabled: true
  marker_path: /tmp/tests-passed
  max_age_seconds: 600
cost_controls:
  enabled: true
  session_budget_usd: 1.50
  over_budget_action: block
rules:
  rules:
    - id: no-force-push
      tools: [Bash]
      command_pattern: "git\\s+push\\s+.*--force"
      action:
        type: deny
        reason: force pushes are not allowed
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Engine.ShortCircuitEnabled())
	assert.Equal(t, "deny", cfg.Engine.DefaultDecision)
	assert.Equal(t, 2500, cfg.Engine.TimeoutMs)

	require.Contains(t, cfg.Engine.Sources, "llm")
	require.NotNil(t, cfg.Engine.Sources["llm"].Enabled)
	assert.False(t, *cfg.Engine.Sources["llm"].Enabled)

	assert.True(t, cfg.TestGate.Enabled)
	assert.Equal(t, "/tmp/tests-passed", cfg.TestGate.MarkerPath)
	assert.Equal(t, 600, cfg.TestGate.MaxAgeSeconds)

	assert.True(t, cfg.CostControls.Enabled)
	require.NotNil(t, cfg.CostControls.SessionBudgetUSD)
	assert.InDelta(t, 1.50, *cfg.CostControls.SessionBudgetUSD, 1e-9)
	assert.Equal(t, OverBudgetBlock, cfg.CostControls.OverBudgetAction)

	require.Len(t, cfg.Rules.Rules, 1)
	assert.Equal(t, "no-force-push", cfg.Rules.Rules[0].ID)
	assert.Equal(t, "deny", cfg.Rules.Rules[0].Action.Type)

	// Untouched sections keep their defaults.
	assert.Equal(t, "sqlite", cfg.CostStore.Type)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "/explicit/path.yaml", GetConfigPath("/explicit/path.yaml"))
	assert.NotEmpty(t, GetConfigPath(""))
}

func TestEngineConfig_ShortCircuitEnabled(t *testing.T) {
	assert.True(t, EngineConfig{}.ShortCircuitEnabled())

	off := false
	assert.False(t, EngineConfig{ShortCircuit: &off}.ShortCircuitEnabled())

	on := true
	assert.True(t, EngineConfig{ShortCircuit: &on}.ShortCircuitEnabled())
}

func TestRuleConfig_IsEnabled(t *testing.T) {
	assert.True(t, RuleConfig{}.IsEnabled())

	off := false
	assert.False(t, RuleConfig{Enabled: &off}.IsEnabled())
}

func TestLLMEvaluationConfig_Triggers(t *testing.T) {
	cfg := DefaultLLMEvaluationConfig()
	assert.True(t, cfg.Triggers("PreToolUse"))
	assert.True(t, cfg.Triggers("PermissionRequest"))
	assert.False(t, cfg.Triggers("Stop"))
}

func TestPricingConfig_CalculateCost(t *testing.T) {
	pricing := DefaultPricingConfig()

	// 1M input + 1M output on gpt-4o-mini: 0.15 + 0.60
	cost := pricing.CalculateCost("openai/gpt-4o-mini", 1_000_000, 1_000_000)
	assert.InDelta(t, 0.75, cost, 1e-9)

	assert.Zero(t, pricing.CalculateCost("unknown/model", 1_000_000, 1_000_000))

	pricing.Enabled = false
	assert.Zero(t, pricing.CalculateCost("openai/gpt-4o-mini", 1_000_000, 1_000_000))
}
