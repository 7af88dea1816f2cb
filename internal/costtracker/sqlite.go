package costtracker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	config "github.com/toolwarden/cli/config"
)

// SQLiteStore persists usage entries in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if necessary) the database at the
// configured path.
func NewSQLiteStore(cfg config.SQLiteStoreConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db, path: cfg.Path}
	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		model TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		cost_usd REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_session ON usage_entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_usage_created ON usage_entries(created_at);`

	_, err := s.db.Exec(schema)
	return err
}

// RecordUsage appends one usage entry.
func (s *SQLiteStore) RecordUsage(ctx context.Context, entry UsageEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_entries (session_id, model, input_tokens, output_tokens, cost_usd, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.Model, entry.InputTokens, entry.OutputTokens, entry.CostUSD, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// SessionCost returns total spend for one session.
func (s *SQLiteStore) SessionCost(ctx context.Context, sessionID string) (float64, error) {
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE session_id = ?`, sessionID)
}

// DailyCost returns total spend for the calendar day containing t.
func (s *SQLiteStore) DailyCost(ctx context.Context, t time.Time) (float64, error) {
	from := dayStart(t)
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE created_at >= ? AND created_at < ?`,
		from.UTC(), from.AddDate(0, 0, 1).UTC())
}

// MonthlyCost returns total spend for the calendar month containing t.
func (s *SQLiteStore) MonthlyCost(ctx context.Context, t time.Time) (float64, error) {
	from := monthStart(t)
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE created_at >= ? AND created_at < ?`,
		from.UTC(), from.AddDate(0, 1, 0).UTC())
}

func (s *SQLiteStore) sumCost(ctx context.Context, query string, args ...any) (float64, error) {
	var total float64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to aggregate cost: %w", err)
	}
	return total, nil
}

// Health pings the database.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
