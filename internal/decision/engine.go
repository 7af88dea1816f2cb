package decision

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/toolwarden/cli/internal/domain"
	logger "github.com/toolwarden/cli/internal/logger"
)

// Engine arbitrates one hook event across its registered decision sources.
//
// Registration and evaluation share the source registry, so registry
// mutations are guarded by a mutex and evaluation works on a snapshot taken
// at the start of Decide. The engine keeps no other state between calls.
type Engine struct {
	mu        sync.RWMutex
	opts      Options
	sources   map[string]*registration
	seq       int
	listeners *listenerRegistry
}

// registration tracks a source plus its engine-side adjustments.
type registration struct {
	source   domain.DecisionSource
	override SourceOverride
	disabled bool // engine-level kill switch, see SetEnabled
	seq      int  // registration order, breaks priority ties
}

func (r *registration) name() string {
	return r.source.Name()
}

func (r *registration) priority() int {
	if r.override.Priority != nil {
		return *r.override.Priority
	}
	return r.source.Priority()
}

func (r *registration) enabled() bool {
	if r.disabled {
		return false
	}
	if r.override.Enabled != nil {
		return *r.override.Enabled
	}
	return r.source.Enabled()
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:      opts.normalize(),
		sources:   make(map[string]*registration),
		listeners: newListenerRegistry(),
	}
}

// Register adds a source to the registry. Registering a source under an
// already-used name replaces the prior source; the replacement takes the
// registration slot's position for tie-breaking.
func (e *Engine) Register(source domain.DecisionSource) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	reg := &registration{source: source, seq: e.seq}
	if ov, ok := e.opts.Overrides[source.Name()]; ok {
		reg.override = ov
	}
	e.sources[source.Name()] = reg
}

// Unregister removes a source by name and reports whether it was present.
func (e *Engine) Unregister(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.sources[name]
	delete(e.sources, name)
	return ok
}

// SetEnabled flips the engine-level switch for a source and reports whether
// the source exists. A source disabled here is never invoked, regardless of
// what the source's own Enabled method says.
func (e *Engine) SetEnabled(name string, enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, ok := e.sources[name]
	if !ok {
		return false
	}
	reg.disabled = !enabled
	return true
}

// applicable returns the enabled sources accepting the hook type, sorted
// ascending by priority with registration order breaking ties.
func (e *Engine) applicable(hook domain.HookType) []*registration {
	e.mu.RLock()
	regs := make([]*registration, 0, len(e.sources))
	for _, reg := range e.sources {
		if reg.enabled() && reg.source.AppliesTo(hook) {
			regs = append(regs, reg)
		}
	}
	e.mu.RUnlock()

	sort.Slice(regs, func(i, j int) bool {
		if regs[i].priority() != regs[j].priority() {
			return regs[i].priority() < regs[j].priority()
		}
		return regs[i].seq < regs[j].seq
	})
	return regs
}

// Decide evaluates every applicable source for the context and aggregates
// their results. It never returns an error: source failures and timeouts
// degrade to abstentions, and with no opinions at all the configured default
// decision applies.
func (e *Engine) Decide(ctx context.Context, ec *domain.EvaluationContext) *domain.AggregatedDecisionResult {
	start := time.Now()
	regs := e.applicable(ec.HookType)

	var agg *domain.AggregatedDecisionResult
	if e.opts.ShortCircuit {
		agg = e.decideSequential(ctx, regs, ec)
	} else {
		agg = e.decideParallel(ctx, regs, ec)
	}
	agg.Elapsed = time.Since(start)

	logger.L(ctx).Debug("decision evaluated",
		zap.String("hook", string(ec.HookType)),
		zap.String("session_id", ec.SessionID),
		zap.String("tool", ec.ToolName),
		zap.String("final_decision", string(agg.FinalDecision)),
		zap.String("deciding_source", agg.DecidingSource),
		zap.Duration("elapsed", agg.Elapsed),
	)

	e.listeners.notify(newDecisionEvent(ec, agg))
	return agg
}

// WouldBlock reports whether the final decision for the context is deny or
// block. Convenience for callers that only need a boolean gate.
func (e *Engine) WouldBlock(ctx context.Context, ec *domain.EvaluationContext) bool {
	return e.Decide(ctx, ec).Blocked()
}

// decideSequential walks sources in priority order. Each non-abstaining
// result becomes the running final decision; deny/block stops the walk and
// later sources are never invoked.
func (e *Engine) decideSequential(ctx context.Context, regs []*registration, ec *domain.EvaluationContext) *domain.AggregatedDecisionResult {
	agg := e.newAggregate()
	var messages []string

	for _, reg := range regs {
		res := e.evaluateOne(ctx, reg, ec)
		if res == nil {
			continue
		}
		agg.Results = append(agg.Results, *res)
		if res.Outcome.IsAbstain() {
			continue
		}

		agg.FinalDecision = res.Outcome
		agg.DecidingSource = res.Source
		agg.Reason = res.Reason
		if res.SystemMessage != "" {
			messages = append(messages, res.SystemMessage)
		}
		agg.Modifications = mergeModifications(agg.Modifications, res.Modifications)

		if res.Outcome.IsTerminal() {
			break
		}
	}

	agg.SystemMessage = strings.Join(messages, "\n\n")
	return agg
}

// decideParallel invokes every applicable source concurrently, then resolves
// the final decision by scanning results in priority order. Completion order
// never influences the outcome, only the wall-clock cost of computing it.
// Slow sources are not cancelled; they run to completion or timeout on their
// own.
func (e *Engine) decideParallel(ctx context.Context, regs []*registration, ec *domain.EvaluationContext) *domain.AggregatedDecisionResult {
	results := make([]*domain.DecisionResult, len(regs))

	g := new(errgroup.Group)
	for i, reg := range regs {
		i, reg := i, reg
		g.Go(func() error {
			results[i] = e.evaluateOne(ctx, reg, ec)
			return nil
		})
	}
	_ = g.Wait()

	agg := e.newAggregate()
	var messages []string
	decided := false

	for _, res := range results {
		if res == nil {
			continue
		}
		agg.Results = append(agg.Results, *res)
		if res.Outcome.IsAbstain() {
			continue
		}

		// First non-abstaining source in priority order decides.
		if !decided {
			agg.FinalDecision = res.Outcome
			agg.DecidingSource = res.Source
			agg.Reason = res.Reason
			decided = true
		}
		if res.SystemMessage != "" {
			messages = append(messages, res.SystemMessage)
		}
		agg.Modifications = mergeModifications(agg.Modifications, res.Modifications)
	}

	agg.SystemMessage = strings.Join(messages, "\n\n")
	return agg
}

func (e *Engine) newAggregate() *domain.AggregatedDecisionResult {
	return &domain.AggregatedDecisionResult{
		FinalDecision:  e.opts.DefaultDecision,
		DecidingSource: domain.DefaultDecidingSource,
	}
}

// evaluateOne races a single source against the per-source timeout. A nil
// return is a plain abstention; failures and timeouts come back as abstain
// results with a synthetic reason so they stay visible in the result list.
func (e *Engine) evaluateOne(ctx context.Context, reg *registration, ec *domain.EvaluationContext) *domain.DecisionResult {
	tctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	type outcome struct {
		res *domain.DecisionResult
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		res, err := reg.source.Evaluate(tctx, ec)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			logger.L(ctx).Warn("decision source failed",
				zap.String("source", reg.name()), zap.Error(o.err))
			return failureResult(reg.name(), o.err)
		}
		if o.res == nil {
			return nil
		}
		res := *o.res
		if res.Source == "" {
			res.Source = reg.name()
		}
		return &res
	case <-tctx.Done():
		logger.L(ctx).Warn("decision source timed out",
			zap.String("source", reg.name()), zap.Duration("timeout", e.opts.Timeout))
		return failureResult(reg.name(), tctx.Err())
	}
}

// failureResult records a broken or timed-out source as an abstention.
func failureResult(source string, err error) *domain.DecisionResult {
	return &domain.DecisionResult{
		Outcome: domain.DecisionAbstain,
		Source:  source,
		Reason:  fmt.Sprintf("evaluation failed: %v", err),
	}
}

// mergeModifications overlays src onto dst, allocating dst on first use.
// Callers merge in the order results were appended, which matches priority
// order in both modes, so a later source's keys win on conflict.
func mergeModifications(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
