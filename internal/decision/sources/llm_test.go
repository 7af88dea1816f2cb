package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
	logger "github.com/toolwarden/cli/internal/logger"
)

// stubJudge records the prompt it was asked and answers with a scripted
// verdict.
type stubJudge struct {
	verdict *domain.JudgeVerdict
	err     error

	prompt string
	opts   domain.JudgeOptions
	calls  int
}

func (j *stubJudge) Evaluate(_ context.Context, prompt string, opts domain.JudgeOptions) (*domain.JudgeVerdict, error) {
	j.calls++
	j.prompt = prompt
	j.opts = opts
	return j.verdict, j.err
}

func enabledLLMConfig() config.LLMEvaluationConfig {
	cfg := config.DefaultLLMEvaluationConfig()
	cfg.Enabled = true
	return cfg
}

func llmSource(cfg config.LLMEvaluationConfig, judge domain.JudgeProvider) *LLMSource {
	return NewLLMSource(func() config.LLMEvaluationConfig { return cfg }, judge)
}

func TestLLMSource_Contract(t *testing.T) {
	s := llmSource(enabledLLMConfig(), &stubJudge{})
	assert.Equal(t, "llm", s.Name())
	assert.Equal(t, PriorityLLM, s.Priority())
	assert.True(t, s.Enabled())
}

func TestLLMSource_AppliesToFollowsTriggerHooks(t *testing.T) {
	cfg := enabledLLMConfig()
	s := llmSource(cfg, &stubJudge{})

	assert.True(t, s.AppliesTo(domain.HookPreToolUse))
	assert.True(t, s.AppliesTo(domain.HookPermissionRequest))
	assert.False(t, s.AppliesTo(domain.HookStop))

	cfg.Enabled = false
	disabled := llmSource(cfg, &stubJudge{})
	assert.False(t, disabled.AppliesTo(domain.HookPreToolUse))
}

func TestLLMSource_VerdictBecomesResult(t *testing.T) {
	judge := &stubJudge{verdict: &domain.JudgeVerdict{
		Decision:   domain.DecisionDeny,
		Reason:     "command deletes the repository",
		Confidence: 0.92,
	}}
	cfg := enabledLLMConfig()
	s := llmSource(cfg, judge)

	res, err := s.Evaluate(logger.NopContext(), preToolUseEC())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, domain.DecisionDeny, res.Outcome)
	assert.Equal(t, "llm", res.Source)
	assert.Equal(t, "command deletes the repository", res.Reason)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.Equal(t, cfg.Provider, res.Metadata["provider"])
	assert.Equal(t, cfg.Model, res.Metadata["model"])

	// The rendered prompt carries the tool call under review.
	assert.Contains(t, judge.prompt, "Bash")
	assert.Equal(t, cfg.MaxTokens, judge.opts.MaxTokens)
}

func TestLLMSource_AbstainCases(t *testing.T) {
	disabled := enabledLLMConfig()
	disabled.Enabled = false

	tests := []struct {
		name  string
		cfg   config.LLMEvaluationConfig
		judge *stubJudge
	}{
		{"disabled", disabled, &stubJudge{verdict: &domain.JudgeVerdict{Decision: domain.DecisionDeny}}},
		{"provider error", enabledLLMConfig(), &stubJudge{err: errors.New("api down")}},
		{"abstain verdict", enabledLLMConfig(), &stubJudge{verdict: &domain.JudgeVerdict{Decision: domain.DecisionAbstain}}},
		{"nil verdict", enabledLLMConfig(), &stubJudge{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := llmSource(tt.cfg, tt.judge).Evaluate(logger.NopContext(), preToolUseEC())
			require.NoError(t, err)
			assert.Nil(t, res)
		})
	}
}

func TestLLMSource_NilProviderAbstains(t *testing.T) {
	s := llmSource(enabledLLMConfig(), nil)

	res, err := s.Evaluate(logger.NopContext(), preToolUseEC())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestLLMSource_NoTemplateAbstains(t *testing.T) {
	judge := &stubJudge{verdict: &domain.JudgeVerdict{Decision: domain.DecisionDeny}}
	s := llmSource(enabledLLMConfig(), judge)

	ec := &domain.EvaluationContext{HookType: domain.HookSessionStart}
	res, err := s.Evaluate(logger.NopContext(), ec)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Zero(t, judge.calls)
}
