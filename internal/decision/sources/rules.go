// Package sources holds the built-in decision sources registered with the
// decision engine.
package sources

import (
	"context"

	domain "github.com/toolwarden/cli/internal/domain"
)

// Default priorities. Lower runs earlier; static rules go first so cheap,
// deterministic policy can short-circuit before anything slow runs.
const (
	PriorityRules    = 100
	PriorityTestGate = 200
	PriorityCost     = 300
	PriorityLLM      = 400
)

// RulesSource adapts the external rule matcher to the decision source
// contract.
type RulesSource struct {
	matcher domain.RuleMatcher
}

// NewRulesSource wraps a rule matcher.
func NewRulesSource(matcher domain.RuleMatcher) *RulesSource {
	return &RulesSource{matcher: matcher}
}

func (s *RulesSource) Name() string  { return "rules" }
func (s *RulesSource) Priority() int { return PriorityRules }

// Enabled reports whether a matcher is wired at all.
func (s *RulesSource) Enabled() bool { return s.matcher != nil }

// AppliesTo accepts every hook type; rules carry their own hook filters.
func (s *RulesSource) AppliesTo(domain.HookType) bool { return true }

// Evaluate maps a matched rule's action onto a decision result. A matched
// "prompt" action is deliberately an abstention: prompt means "defer to a
// human or to the LLM judge", not a decision in itself.
func (s *RulesSource) Evaluate(ctx context.Context, ec *domain.EvaluationContext) (*domain.DecisionResult, error) {
	match, err := s.matcher.Evaluate(ctx, ec)
	if err != nil {
		return nil, err
	}
	if !match.Matched || match.Action == nil {
		return nil, nil
	}

	outcome, ok := actionOutcome(match.Action.Type)
	if !ok {
		return nil, nil
	}

	result := &domain.DecisionResult{
		Outcome:       outcome,
		Source:        s.Name(),
		Reason:        match.Action.Reason,
		SystemMessage: match.Action.SystemMessage,
		Modifications: match.Action.Modifications,
	}
	if match.Rule != nil {
		result.Metadata = map[string]any{
			"rule_id":   match.Rule.ID,
			"rule_name": match.Rule.Name,
			"rule_set":  match.Rule.RuleSet,
		}
	}
	return result, nil
}

func actionOutcome(t domain.RuleActionType) (domain.DecisionOutcome, bool) {
	switch t {
	case domain.RuleActionAllow:
		return domain.DecisionAllow, true
	case domain.RuleActionDeny:
		return domain.DecisionDeny, true
	case domain.RuleActionBlock:
		return domain.DecisionBlock, true
	case domain.RuleActionContinue:
		return domain.DecisionContinue, true
	case domain.RuleActionModify:
		return domain.DecisionModify, true
	case domain.RuleActionWarn:
		return domain.DecisionWarn, true
	default:
		return domain.DecisionAbstain, false
	}
}
