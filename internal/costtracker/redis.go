package costtracker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	config "github.com/toolwarden/cli/config"
)

// RedisStore keeps running spend counters in Redis. Individual entries are
// not retained; RecordUsage increments per-session, per-day and per-month
// counters, which is all the budget queries need.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the configured Redis instance.
func NewRedisStore(cfg config.RedisStoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:       cfg.Database,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	var ttl time.Duration
	if cfg.TTLDays > 0 {
		ttl = time.Duration(cfg.TTLDays) * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cost:session:%s", sessionID)
}

func dayKey(t time.Time) string {
	return fmt.Sprintf("cost:day:%s", t.Format("2006-01-02"))
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("cost:month:%s", t.Format("2006-01"))
}

// RecordUsage increments the spend counters covering the entry's timestamp.
func (s *RedisStore) RecordUsage(ctx context.Context, entry UsageEntry) error {
	pipe := s.client.Pipeline()
	pipe.IncrByFloat(ctx, sessionKey(entry.SessionID), entry.CostUSD)
	pipe.IncrByFloat(ctx, dayKey(entry.CreatedAt), entry.CostUSD)
	pipe.IncrByFloat(ctx, monthKey(entry.CreatedAt), entry.CostUSD)
	if s.ttl > 0 {
		pipe.Expire(ctx, sessionKey(entry.SessionID), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// SessionCost returns total spend for one session.
func (s *RedisStore) SessionCost(ctx context.Context, sessionID string) (float64, error) {
	return s.counter(ctx, sessionKey(sessionID))
}

// DailyCost returns total spend for the calendar day containing t.
func (s *RedisStore) DailyCost(ctx context.Context, t time.Time) (float64, error) {
	return s.counter(ctx, dayKey(t))
}

// MonthlyCost returns total spend for the calendar month containing t.
func (s *RedisStore) MonthlyCost(ctx context.Context, t time.Time) (float64, error) {
	return s.counter(ctx, monthKey(t))
}

func (s *RedisStore) counter(ctx context.Context, key string) (float64, error) {
	val, err := s.client.Get(ctx, key).Float64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return val, nil
}

// Health pings the server.
func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
