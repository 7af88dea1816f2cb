package sources

import (
	"context"
	"fmt"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
)

// CostSource enforces session, daily and monthly USD budgets. The first
// exceeded scope, checked in that order, produces the result.
type CostSource struct {
	cfg      func() config.CostControlsConfig
	provider domain.CostDataProvider
}

// NewCostSource creates the source around a config accessor and a cost
// data provider.
func NewCostSource(cfg func() config.CostControlsConfig, provider domain.CostDataProvider) *CostSource {
	return &CostSource{cfg: cfg, provider: provider}
}

func (s *CostSource) Name() string  { return "cost" }
func (s *CostSource) Priority() int { return PriorityCost }
func (s *CostSource) Enabled() bool { return s.provider != nil }

// AppliesTo accepts Stop and PreToolUse; those are the points where more
// spend is about to happen.
func (s *CostSource) AppliesTo(hook domain.HookType) bool {
	return hook == domain.HookStop || hook == domain.HookPreToolUse
}

type budgetScope struct {
	label string
	limit *float64
	spend func(ctx context.Context) (float64, error)
}

// Evaluate checks the budgets in scope order. A nil budget means no limit
// at that scope.
func (s *CostSource) Evaluate(ctx context.Context, ec *domain.EvaluationContext) (*domain.DecisionResult, error) {
	cfg := s.cfg()
	if !cfg.Enabled {
		return nil, nil
	}

	scopes := []budgetScope{
		{"Session", cfg.SessionBudgetUSD, func(ctx context.Context) (float64, error) {
			return s.provider.GetSessionCost(ctx, ec.SessionID)
		}},
		{"Daily", cfg.DailyBudgetUSD, s.provider.GetDailyCost},
		{"Monthly", cfg.MonthlyBudgetUSD, s.provider.GetMonthlyCost},
	}

	for _, scope := range scopes {
		if scope.limit == nil {
			continue
		}
		current, err := scope.spend(ctx)
		if err != nil {
			return nil, err
		}
		if current < *scope.limit {
			continue
		}
		return s.overBudgetResult(cfg, scope.label, current, *scope.limit), nil
	}
	return nil, nil
}

func (s *CostSource) overBudgetResult(cfg config.CostControlsConfig, scope string, current, limit float64) *domain.DecisionResult {
	reason := fmt.Sprintf("%s budget exceeded: $%.2f / $%.2f", scope, current, limit)

	outcome := domain.DecisionWarn
	if cfg.OverBudgetAction == config.OverBudgetBlock {
		outcome = domain.DecisionBlock
	}

	result := &domain.DecisionResult{
		Outcome: outcome,
		Source:  s.Name(),
		Reason:  reason,
		Metadata: map[string]any{
			"scope":       scope,
			"current_usd": current,
			"limit_usd":   limit,
			"action":      cfg.OverBudgetAction,
		},
	}
	if outcome == domain.DecisionWarn {
		result.SystemMessage = reason
	}
	return result
}

// BudgetUsagePercent returns spend as a percentage of the limit. A
// non-positive limit reads as zero usage.
func BudgetUsagePercent(current, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return current / limit * 100
}

// HighestCrossedThreshold returns the largest threshold fraction (from an
// ascending list) that current spend has crossed, for callers that alert
// incrementally before the budget is exhausted.
func HighestCrossedThreshold(current, limit float64, thresholds []float64) (float64, bool) {
	if limit <= 0 {
		return 0, false
	}

	var crossed float64
	found := false
	for _, t := range thresholds {
		if current >= t*limit && t >= crossed {
			crossed = t
			found = true
		}
	}
	return crossed, found
}
