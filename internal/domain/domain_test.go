package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecisionOutcome_IsTerminal(t *testing.T) {
	assert.True(t, DecisionDeny.IsTerminal())
	assert.True(t, DecisionBlock.IsTerminal())

	for _, o := range []DecisionOutcome{DecisionAllow, DecisionWarn, DecisionModify, DecisionContinue, DecisionAbstain} {
		assert.False(t, o.IsTerminal(), string(o))
	}
}

func TestDecisionOutcome_IsAbstain(t *testing.T) {
	assert.True(t, DecisionAbstain.IsAbstain())
	assert.True(t, DecisionOutcome("").IsAbstain())
	assert.False(t, DecisionAllow.IsAbstain())
	assert.False(t, DecisionDeny.IsAbstain())
}

func TestAggregatedDecisionResult_Blocked(t *testing.T) {
	assert.True(t, (&AggregatedDecisionResult{FinalDecision: DecisionDeny}).Blocked())
	assert.True(t, (&AggregatedDecisionResult{FinalDecision: DecisionBlock}).Blocked())
	assert.False(t, (&AggregatedDecisionResult{FinalDecision: DecisionAllow}).Blocked())
	assert.False(t, (&AggregatedDecisionResult{FinalDecision: DecisionWarn}).Blocked())
}

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID()

	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{8}$`), id.String())
	assert.InDelta(t, time.Now().Unix(), id.Timestamp(), 2)
	assert.Less(t, id.Age(), 5*time.Second)

	other := GenerateSessionID()
	assert.NotEqual(t, id, other)
}

func TestSessionID_MalformedTimestamp(t *testing.T) {
	assert.Zero(t, SessionID("not-a-timestamp").Timestamp())
	assert.Zero(t, SessionID("not-a-timestamp").Age())
}
