package costtracker

import (
	"context"
	"time"

	config "github.com/toolwarden/cli/config"
)

// Tracker prices token usage and persists it through a CostStore. It
// implements the CostDataProvider queries consumed by the cost decision
// source.
type Tracker struct {
	store   CostStore
	pricing config.PricingConfig
	now     func() time.Time
}

// NewTracker creates a tracker on top of the given store.
func NewTracker(store CostStore, pricing config.PricingConfig) *Tracker {
	return &Tracker{
		store:   store,
		pricing: pricing,
		now:     time.Now,
	}
}

// RecordTokens prices one request and records it. Returns the USD cost.
func (t *Tracker) RecordTokens(ctx context.Context, sessionID, model string, inputTokens, outputTokens int) (float64, error) {
	cost := t.pricing.CalculateCost(model, inputTokens, outputTokens)
	entry := UsageEntry{
		SessionID:    sessionID,
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      cost,
		CreatedAt:    t.now(),
	}
	if err := t.store.RecordUsage(ctx, entry); err != nil {
		return 0, err
	}
	return cost, nil
}

// GetSessionCost returns total spend for one session.
func (t *Tracker) GetSessionCost(ctx context.Context, sessionID string) (float64, error) {
	return t.store.SessionCost(ctx, sessionID)
}

// GetDailyCost returns total spend for the current day.
func (t *Tracker) GetDailyCost(ctx context.Context) (float64, error) {
	return t.store.DailyCost(ctx, t.now())
}

// GetMonthlyCost returns total spend for the current month.
func (t *Tracker) GetMonthlyCost(ctx context.Context) (float64, error) {
	return t.store.MonthlyCost(ctx, t.now())
}

// Close closes the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}
