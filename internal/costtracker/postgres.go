package costtracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	config "github.com/toolwarden/cli/config"
)

// PostgresStore persists usage entries in Postgres, for fleets that share
// budgets across machines.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the configured database and ensures the
// schema exists.
func NewPostgresStore(cfg config.PostgresStoreConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_entries (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		model TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		cost_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_session ON usage_entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_usage_created ON usage_entries(created_at);`

	_, err := s.db.Exec(schema)
	return err
}

// RecordUsage appends one usage entry.
func (s *PostgresStore) RecordUsage(ctx context.Context, entry UsageEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_entries (session_id, model, input_tokens, output_tokens, cost_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.SessionID, entry.Model, entry.InputTokens, entry.OutputTokens, entry.CostUSD, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// SessionCost returns total spend for one session.
func (s *PostgresStore) SessionCost(ctx context.Context, sessionID string) (float64, error) {
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE session_id = $1`, sessionID)
}

// DailyCost returns total spend for the calendar day containing t.
func (s *PostgresStore) DailyCost(ctx context.Context, t time.Time) (float64, error) {
	from := dayStart(t)
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE created_at >= $1 AND created_at < $2`,
		from.UTC(), from.AddDate(0, 0, 1).UTC())
}

// MonthlyCost returns total spend for the calendar month containing t.
func (s *PostgresStore) MonthlyCost(ctx context.Context, t time.Time) (float64, error) {
	from := monthStart(t)
	return s.sumCost(ctx, `SELECT COALESCE(SUM(cost_usd), 0) FROM usage_entries WHERE created_at >= $1 AND created_at < $2`,
		from.UTC(), from.AddDate(0, 1, 0).UTC())
}

func (s *PostgresStore) sumCost(ctx context.Context, query string, args ...any) (float64, error) {
	var total float64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to aggregate cost: %w", err)
	}
	return total, nil
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
