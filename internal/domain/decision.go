package domain

import "time"

// DecisionOutcome is the closed set of verdicts a decision source can render.
type DecisionOutcome string

const (
	DecisionAllow    DecisionOutcome = "allow"
	DecisionWarn     DecisionOutcome = "warn"
	DecisionModify   DecisionOutcome = "modify"
	DecisionContinue DecisionOutcome = "continue"
	DecisionDeny     DecisionOutcome = "deny"
	DecisionBlock    DecisionOutcome = "block"
	// DecisionAbstain means "no opinion". It is never a final decision.
	DecisionAbstain DecisionOutcome = "abstain"
)

// IsTerminal reports whether the outcome short-circuits sequential evaluation.
func (o DecisionOutcome) IsTerminal() bool {
	return o == DecisionDeny || o == DecisionBlock
}

// IsAbstain reports whether the outcome expresses no opinion.
func (o DecisionOutcome) IsAbstain() bool {
	return o == DecisionAbstain || o == ""
}

// DecisionResult is the output of one source for one evaluation.
// A nil *DecisionResult is treated identically to an abstain outcome.
type DecisionResult struct {
	Outcome       DecisionOutcome `json:"outcome"`
	Source        string          `json:"source"`
	Reason        string          `json:"reason,omitempty"`
	SystemMessage string          `json:"system_message,omitempty"`
	Modifications map[string]any  `json:"modifications,omitempty"`
	// Confidence is informational only and never affects arbitration.
	Confidence float64        `json:"confidence,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// AggregatedDecisionResult is the engine's output for one evaluation.
// DecidingSource names whichever source last updated FinalDecision before the
// loop ended or short-circuited, or "default" when every source abstained.
type AggregatedDecisionResult struct {
	FinalDecision  DecisionOutcome  `json:"final_decision"`
	DecidingSource string           `json:"deciding_source"`
	Reason         string           `json:"reason,omitempty"`
	SystemMessage  string           `json:"system_message,omitempty"`
	Modifications  map[string]any   `json:"modifications,omitempty"`
	Results        []DecisionResult `json:"results"`
	Elapsed        time.Duration    `json:"elapsed"`
}

// Blocked reports whether the final decision stops the action outright.
func (r *AggregatedDecisionResult) Blocked() bool {
	return r.FinalDecision.IsTerminal()
}

// DefaultDecidingSource is the sentinel used when no source rendered a verdict.
const DefaultDecidingSource = "default"
