package config

// CostStoreConfig selects the backend persisting token usage and spend.
type CostStoreConfig struct {
	// Type is one of "sqlite", "postgres", "redis", or "memory".
	Type string `yaml:"type" mapstructure:"type"`

	SQLite   SQLiteStoreConfig   `yaml:"sqlite,omitempty" mapstructure:"sqlite"`
	Postgres PostgresStoreConfig `yaml:"postgres,omitempty" mapstructure:"postgres"`
	Redis    RedisStoreConfig    `yaml:"redis,omitempty" mapstructure:"redis"`
}

// SQLiteStoreConfig contains SQLite-specific settings.
type SQLiteStoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresStoreConfig contains Postgres-specific settings.
type PostgresStoreConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisStoreConfig contains Redis-specific settings.
type RedisStoreConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database int    `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username,omitempty" mapstructure:"username"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	// TTLDays expires per-session counters; monthly counters always live
	// until month end. Zero keeps everything.
	TTLDays int `yaml:"ttl_days,omitempty" mapstructure:"ttl_days"`
}

// DefaultCostStoreConfig returns a local SQLite store.
func DefaultCostStoreConfig() CostStoreConfig {
	return CostStoreConfig{
		Type: "sqlite",
		SQLite: SQLiteStoreConfig{
			Path: ".warden/costs.db",
		},
		Postgres: PostgresStoreConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Redis: RedisStoreConfig{
			Host: "localhost",
			Port: 6379,
		},
	}
}
