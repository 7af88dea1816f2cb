package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/toolwarden/cli/config"
	"github.com/toolwarden/cli/internal/costtracker"
)

func newTestTracker() *costtracker.Tracker {
	return costtracker.NewTracker(costtracker.NewMemoryStore(), config.DefaultPricingConfig())
}

func TestRecordUsage(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	cost, err := recordUsage(ctx, tracker, []string{"s1", "openai/gpt-4o-mini", "1000000", "1000000"})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, cost, 1e-9)

	// The budget queries see what record wrote.
	session, err := tracker.GetSessionCost(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, session, 1e-9)

	daily, err := tracker.GetDailyCost(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, daily, 1e-9)
}

func TestRecordUsage_AccumulatesPerSession(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	_, err := recordUsage(ctx, tracker, []string{"s1", "openai/gpt-4o-mini", "1000000", "0"})
	require.NoError(t, err)
	_, err = recordUsage(ctx, tracker, []string{"s1", "openai/gpt-4o-mini", "0", "1000000"})
	require.NoError(t, err)
	_, err = recordUsage(ctx, tracker, []string{"other", "openai/gpt-4o-mini", "1000000", "0"})
	require.NoError(t, err)

	session, err := tracker.GetSessionCost(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, session, 1e-9)
}

func TestRecordUsage_InvalidTokenCounts(t *testing.T) {
	tracker := newTestTracker()

	_, err := recordUsage(context.Background(), tracker, []string{"s1", "m", "not-a-number", "10"})
	assert.ErrorContains(t, err, "invalid input token count")

	_, err = recordUsage(context.Background(), tracker, []string{"s1", "m", "10", "not-a-number"})
	assert.ErrorContains(t, err, "invalid output token count")

	session, err := tracker.GetSessionCost(context.Background(), "s1")
	require.NoError(t, err)
	assert.Zero(t, session)
}
