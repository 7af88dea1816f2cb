package costtracker

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps usage entries in memory. Used in tests and as the
// fallback when no durable backend is reachable.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []UsageEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// RecordUsage appends one usage entry.
func (s *MemoryStore) RecordUsage(_ context.Context, entry UsageEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// SessionCost returns total spend for one session.
func (s *MemoryStore) SessionCost(_ context.Context, sessionID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, e := range s.entries {
		if e.SessionID == sessionID {
			total += e.CostUSD
		}
	}
	return total, nil
}

// DailyCost returns total spend for the calendar day containing t.
func (s *MemoryStore) DailyCost(_ context.Context, t time.Time) (float64, error) {
	return s.costSince(dayStart(t), dayStart(t).AddDate(0, 0, 1)), nil
}

// MonthlyCost returns total spend for the calendar month containing t.
func (s *MemoryStore) MonthlyCost(_ context.Context, t time.Time) (float64, error) {
	return s.costSince(monthStart(t), monthStart(t).AddDate(0, 1, 0)), nil
}

func (s *MemoryStore) costSince(from, until time.Time) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, e := range s.entries {
		if !e.CreatedAt.Before(from) && e.CreatedAt.Before(until) {
			total += e.CostUSD
		}
	}
	return total
}

// Health always succeeds for the in-memory store.
func (s *MemoryStore) Health(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
