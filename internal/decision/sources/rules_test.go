package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/toolwarden/cli/internal/domain"
)

// stubMatcher returns a scripted match.
type stubMatcher struct {
	match domain.RuleMatch
	err   error
}

func (m *stubMatcher) Evaluate(context.Context, *domain.EvaluationContext) (domain.RuleMatch, error) {
	return m.match, m.err
}

func preToolUseEC() *domain.EvaluationContext {
	return &domain.EvaluationContext{
		HookType:  domain.HookPreToolUse,
		SessionID: "1700000000-deadbeef",
		ToolName:  "Bash",
		ToolInput: map[string]any{"command": "ls"},
	}
}

func TestRulesSource_Contract(t *testing.T) {
	s := NewRulesSource(&stubMatcher{})
	assert.Equal(t, "rules", s.Name())
	assert.Equal(t, PriorityRules, s.Priority())
	assert.True(t, s.Enabled())
	assert.True(t, s.AppliesTo(domain.HookPreToolUse))
	assert.True(t, s.AppliesTo(domain.HookStop))

	assert.False(t, NewRulesSource(nil).Enabled())
}

func TestRulesSource_ActionMapping(t *testing.T) {
	tests := []struct {
		action      domain.RuleActionType
		wantOutcome domain.DecisionOutcome
		wantResult  bool
	}{
		{domain.RuleActionAllow, domain.DecisionAllow, true},
		{domain.RuleActionDeny, domain.DecisionDeny, true},
		{domain.RuleActionBlock, domain.DecisionBlock, true},
		{domain.RuleActionContinue, domain.DecisionContinue, true},
		{domain.RuleActionModify, domain.DecisionModify, true},
		{domain.RuleActionWarn, domain.DecisionWarn, true},
		{domain.RuleActionPrompt, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			s := NewRulesSource(&stubMatcher{match: domain.RuleMatch{
				Matched: true,
				Action:  &domain.RuleAction{Type: tt.action, Reason: "scripted"},
			}})

			res, err := s.Evaluate(context.Background(), preToolUseEC())
			require.NoError(t, err)

			if !tt.wantResult {
				assert.Nil(t, res)
				return
			}
			require.NotNil(t, res)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, "rules", res.Source)
			assert.Equal(t, "scripted", res.Reason)
		})
	}
}

func TestRulesSource_NoMatchAbstains(t *testing.T) {
	s := NewRulesSource(&stubMatcher{})
	res, err := s.Evaluate(context.Background(), preToolUseEC())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRulesSource_MatcherErrorPropagates(t *testing.T) {
	s := NewRulesSource(&stubMatcher{err: errors.New("matcher down")})
	_, err := s.Evaluate(context.Background(), preToolUseEC())
	assert.Error(t, err)
}

func TestRulesSource_MetadataIdentifiesRule(t *testing.T) {
	s := NewRulesSource(&stubMatcher{match: domain.RuleMatch{
		Matched: true,
		Action:  &domain.RuleAction{Type: domain.RuleActionDeny},
		Rule:    &domain.MatchedRule{ID: "no-force-push", Name: "No force pushes", RuleSet: "git"},
	}})

	res, err := s.Evaluate(context.Background(), preToolUseEC())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "no-force-push", res.Metadata["rule_id"])
	assert.Equal(t, "No force pushes", res.Metadata["rule_name"])
	assert.Equal(t, "git", res.Metadata["rule_set"])
}

func TestRulesSource_ModifyCarriesModifications(t *testing.T) {
	s := NewRulesSource(&stubMatcher{match: domain.RuleMatch{
		Matched: true,
		Action: &domain.RuleAction{
			Type:          domain.RuleActionModify,
			Modifications: map[string]any{"command": "ls -la"},
		},
	}})

	res, err := s.Evaluate(context.Background(), preToolUseEC())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "ls -la", res.Modifications["command"])
}
