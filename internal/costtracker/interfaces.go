// Package costtracker persists per-request token spend and answers the
// session/daily/monthly cost queries consumed by the cost decision source.
package costtracker

import (
	"context"
	"time"
)

// UsageEntry is one priced LLM request.
type UsageEntry struct {
	SessionID    string    `json:"session_id"`
	Model        string    `json:"model"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CostUSD      float64   `json:"cost_usd"`
	CreatedAt    time.Time `json:"created_at"`
}

// CostStore persists usage entries and aggregates spend.
type CostStore interface {
	// RecordUsage appends one usage entry.
	RecordUsage(ctx context.Context, entry UsageEntry) error

	// SessionCost returns total USD spend for one session.
	SessionCost(ctx context.Context, sessionID string) (float64, error)

	// DailyCost returns total USD spend for the calendar day containing t.
	DailyCost(ctx context.Context, t time.Time) (float64, error)

	// MonthlyCost returns total USD spend for the calendar month containing t.
	MonthlyCost(ctx context.Context, t time.Time) (float64, error)

	// Health checks whether the store is reachable.
	Health(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}
