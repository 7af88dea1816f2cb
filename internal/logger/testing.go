package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a logger that records entries for assertions.
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// TestContext returns a context carrying a recording logger, plus the
// recorded entries for assertions.
func TestContext() (context.Context, *observer.ObservedLogs) {
	l, logs := TestLogger()
	return ContextWithLogger(context.Background(), l), logs
}

// NopContext returns a context carrying a no-op logger.
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}
