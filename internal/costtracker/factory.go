package costtracker

import (
	"fmt"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
)

// NewStore creates a cost store for the configured backend.
func NewStore(cfg config.CostStoreConfig) (CostStore, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSQLiteStore(cfg.SQLite)
	case "postgres":
		return NewPostgresStore(cfg.Postgres)
	case "redis":
		return NewRedisStore(cfg.Redis)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStoreType, cfg.Type)
	}
}
