package costtracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/toolwarden/cli/config"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(config.SQLiteStoreConfig{
		Path: filepath.Join(t.TempDir(), "costs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RecordAndQuery(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entries := []UsageEntry{
		{SessionID: "a", Model: "m", InputTokens: 100, OutputTokens: 10, CostUSD: 0.25, CreatedAt: now},
		{SessionID: "a", Model: "m", CostUSD: 0.75, CreatedAt: now},
		{SessionID: "b", Model: "m", CostUSD: 3.00, CreatedAt: now},
	}
	for _, e := range entries {
		require.NoError(t, store.RecordUsage(ctx, e))
	}

	session, err := store.SessionCost(ctx, "a")
	require.NoError(t, err)
	assert.InDelta(t, 1.00, session, 1e-9)

	daily, err := store.DailyCost(ctx, now)
	require.NoError(t, err)
	assert.InDelta(t, 4.00, daily, 1e-9)

	monthly, err := store.MonthlyCost(ctx, now)
	require.NoError(t, err)
	assert.InDelta(t, 4.00, monthly, 1e-9)
}

func TestSQLiteStore_EmptyQueriesReturnZero(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	session, err := store.SessionCost(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, session)

	daily, err := store.DailyCost(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, daily)
}

func TestSQLiteStore_Health(t *testing.T) {
	store := newSQLiteStore(t)
	assert.NoError(t, store.Health(context.Background()))
}

func TestSQLiteStore_WindowExcludesOtherDays(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordUsage(ctx, UsageEntry{SessionID: "a", Model: "m", CostUSD: 1.00, CreatedAt: now}))
	require.NoError(t, store.RecordUsage(ctx, UsageEntry{SessionID: "a", Model: "m", CostUSD: 2.00, CreatedAt: now.AddDate(0, 0, -2)}))

	daily, err := store.DailyCost(ctx, now)
	require.NoError(t, err)
	assert.InDelta(t, 1.00, daily, 1e-9)

	monthly, err := store.MonthlyCost(ctx, now)
	require.NoError(t, err)
	assert.InDelta(t, 3.00, monthly, 1e-9)
}
