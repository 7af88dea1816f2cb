package domain

import (
	"context"
	"time"
)

// DecisionSource is a pluggable policy unit registered with the engine.
//
// Implementations must be safe for concurrent use and must signal "no
// opinion" by returning a nil result or one with the abstain outcome, never
// by returning an error. An error (or a timeout) is recovered by the engine
// as an abstention, so it only ever degrades policy coverage.
type DecisionSource interface {
	// Name is the stable registry key. Re-registering under the same name
	// replaces the prior source.
	Name() string

	// Priority orders evaluation; lower values run earlier. Ties are broken
	// by registration order.
	Priority() int

	// Enabled reports whether the source participates in evaluation at all.
	Enabled() bool

	// AppliesTo is a pure predicate over hook types. It is called before an
	// evaluation context exists, so it must not assume one is available.
	AppliesTo(hook HookType) bool

	// Evaluate renders a verdict for the given context, or abstains.
	Evaluate(ctx context.Context, ec *EvaluationContext) (*DecisionResult, error)
}

// RuleActionType is the action a matched rule declares.
type RuleActionType string

const (
	RuleActionAllow    RuleActionType = "allow"
	RuleActionDeny     RuleActionType = "deny"
	RuleActionBlock    RuleActionType = "block"
	RuleActionContinue RuleActionType = "continue"
	RuleActionModify   RuleActionType = "modify"
	RuleActionWarn     RuleActionType = "warn"
	// RuleActionPrompt defers the decision to a human or to the LLM judge.
	RuleActionPrompt RuleActionType = "prompt"
)

// RuleAction carries what a matched rule wants to happen.
type RuleAction struct {
	Type          RuleActionType
	Reason        string
	SystemMessage string
	Modifications map[string]any
}

// MatchedRule identifies the rule that fired, for auditability.
type MatchedRule struct {
	ID      string
	Name    string
	RuleSet string
}

// RuleMatch is the rule matcher's answer for one evaluation context.
type RuleMatch struct {
	Matched bool
	Action  *RuleAction
	Rule    *MatchedRule
}

// RuleMatcher is the external rule-condition matcher consumed by the rules
// decision source. Its internals are a separate component.
type RuleMatcher interface {
	Evaluate(ctx context.Context, ec *EvaluationContext) (RuleMatch, error)
}

// CostDataProvider answers current spend questions in USD.
type CostDataProvider interface {
	GetSessionCost(ctx context.Context, sessionID string) (float64, error)
	GetDailyCost(ctx context.Context) (float64, error)
	GetMonthlyCost(ctx context.Context) (float64, error)
}

// JudgeVerdict is an LLM provider's parsed answer.
type JudgeVerdict struct {
	Decision   DecisionOutcome
	Reason     string
	Confidence float64
}

// JudgeOptions bound a single provider call.
type JudgeOptions struct {
	MaxTokens int
	Timeout   time.Duration
}

// JudgeProvider evaluates a rendered prompt and returns a verdict.
// A verdict with the abstain decision means the judge declined to rule.
type JudgeProvider interface {
	Evaluate(ctx context.Context, prompt string, opts JudgeOptions) (*JudgeVerdict, error)
}
