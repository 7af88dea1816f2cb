package cmd

import (
	"time"

	"go.uber.org/zap"

	config "github.com/toolwarden/cli/config"
	"github.com/toolwarden/cli/internal/costtracker"
	"github.com/toolwarden/cli/internal/decision"
	"github.com/toolwarden/cli/internal/decision/sources"
	"github.com/toolwarden/cli/internal/domain"
	"github.com/toolwarden/cli/internal/llm"
	"github.com/toolwarden/cli/internal/rules"
)

// buildEngine assembles the decision engine with every configured source.
// The returned cleanup closes the cost store when one was opened.
func buildEngine(cfg *config.Config) (*decision.Engine, func(), error) {
	engine := decision.NewEngine(engineOptions(cfg.Engine))
	cleanup := func() {}

	matcher, err := rules.NewMatcher(cfg.Rules)
	if err != nil {
		return nil, nil, err
	}
	engine.Register(sources.NewRulesSource(matcher))

	engine.Register(sources.NewTestGateSource(func() config.TestGateConfig {
		return cfg.TestGate
	}))

	if cfg.CostControls.Enabled {
		store, err := costtracker.NewStore(cfg.CostStore)
		if err != nil {
			// A broken store should not wedge every hook; degrade to
			// in-memory accounting and say so.
			zap.L().Warn("cost store unavailable, using in-memory store",
				zap.String("type", cfg.CostStore.Type), zap.Error(err))
			store = costtracker.NewMemoryStore()
		}
		tracker := costtracker.NewTracker(store, cfg.Pricing)
		cleanup = func() { _ = tracker.Close() }

		engine.Register(sources.NewCostSource(func() config.CostControlsConfig {
			return cfg.CostControls
		}, tracker))
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		zap.L().Warn("llm provider unavailable", zap.Error(err))
	} else if provider != nil {
		engine.Register(sources.NewLLMSource(func() config.LLMEvaluationConfig {
			return cfg.LLM
		}, provider))
	}

	engine.Subscribe(logDecisionEvent)

	return engine, cleanup, nil
}

func engineOptions(ec config.EngineConfig) decision.Options {
	opts := decision.DefaultOptions()
	opts.ShortCircuit = ec.ShortCircuitEnabled()
	if ec.DefaultDecision != "" {
		opts.DefaultDecision = domain.DecisionOutcome(ec.DefaultDecision)
	}
	if ec.TimeoutMs > 0 {
		opts.Timeout = time.Duration(ec.TimeoutMs) * time.Millisecond
	}
	if len(ec.Sources) > 0 {
		opts.Overrides = make(map[string]decision.SourceOverride, len(ec.Sources))
		for name, o := range ec.Sources {
			opts.Overrides[name] = decision.SourceOverride{
				Enabled:  o.Enabled,
				Priority: o.Priority,
			}
		}
	}
	return opts
}

func logDecisionEvent(event decision.DecisionEvent) {
	zap.L().Debug("decision",
		zap.String("event_id", event.ID),
		zap.String("hook", string(event.HookType)),
		zap.String("session_id", event.SessionID),
		zap.String("tool", event.ToolName),
		zap.String("outcome", string(event.Result.FinalDecision)),
		zap.String("source", event.Result.DecidingSource),
		zap.Duration("elapsed", event.Result.Elapsed),
	)
}
