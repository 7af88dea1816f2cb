package sources

import (
	"context"
	"time"

	"go.uber.org/zap"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
	llm "github.com/toolwarden/cli/internal/llm"
	logger "github.com/toolwarden/cli/internal/logger"
)

// LLMSource asks an LLM judge for a verdict. Strictly best-effort: an
// unreachable or misbehaving provider degrades to an abstention and never
// blocks the pipeline.
type LLMSource struct {
	cfg      func() config.LLMEvaluationConfig
	provider domain.JudgeProvider
}

// NewLLMSource creates the source around a config accessor and a provider.
// A nil provider is allowed and abstains on every evaluation.
func NewLLMSource(cfg func() config.LLMEvaluationConfig, provider domain.JudgeProvider) *LLMSource {
	return &LLMSource{cfg: cfg, provider: provider}
}

func (s *LLMSource) Name() string  { return "llm" }
func (s *LLMSource) Priority() int { return PriorityLLM }
func (s *LLMSource) Enabled() bool { return true }

// AppliesTo accepts a hook only when LLM evaluation is enabled and the hook
// is in the configured trigger list.
func (s *LLMSource) AppliesTo(hook domain.HookType) bool {
	cfg := s.cfg()
	return cfg.Enabled && cfg.Triggers(string(hook))
}

// Evaluate renders the hook's prompt template, invokes the provider and
// maps the verdict. Provider failures and abstain verdicts both come back
// as (nil, nil).
func (s *LLMSource) Evaluate(ctx context.Context, ec *domain.EvaluationContext) (*domain.DecisionResult, error) {
	cfg := s.cfg()
	if !cfg.Enabled || s.provider == nil {
		return nil, nil
	}

	template, ok := llm.TemplateFor(ec.HookType)
	if !ok {
		return nil, nil
	}
	prompt := llm.Render(template, ec)

	verdict, err := s.provider.Evaluate(ctx, prompt, domain.JudgeOptions{
		MaxTokens: cfg.MaxTokens,
		Timeout:   time.Duration(cfg.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		logger.L(ctx).Debug("llm judge unavailable", zap.Error(err))
		return nil, nil
	}
	if verdict == nil || verdict.Decision.IsAbstain() {
		return nil, nil
	}

	return &domain.DecisionResult{
		Outcome:    verdict.Decision,
		Source:     s.Name(),
		Reason:     verdict.Reason,
		Confidence: verdict.Confidence,
		Metadata: map[string]any{
			"provider": cfg.Provider,
			"model":    cfg.Model,
		},
	}, nil
}
