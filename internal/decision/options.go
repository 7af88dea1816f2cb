package decision

import (
	"time"

	domain "github.com/toolwarden/cli/internal/domain"
)

// DefaultTimeout bounds a single source evaluation.
const DefaultTimeout = 5 * time.Second

// SourceOverride adjusts a registered source without modifying the source
// itself. Nil fields leave the source's own value in effect.
type SourceOverride struct {
	Enabled  *bool
	Priority *int
}

// Options configures an Engine. The zero value is not usable; start from
// DefaultOptions and adjust fields explicitly.
type Options struct {
	// ShortCircuit selects sequential evaluation that stops at the first
	// deny/block. When false, every applicable source runs concurrently and
	// priority order still resolves the outcome.
	ShortCircuit bool

	// DefaultDecision is the final decision when every source abstains.
	DefaultDecision domain.DecisionOutcome

	// Timeout is the per-source evaluation budget.
	Timeout time.Duration

	// Overrides adjusts enabled state or priority per source name.
	Overrides map[string]SourceOverride
}

// DefaultOptions returns the engine defaults: sequential short-circuit
// evaluation, allow by default, 5s per source.
func DefaultOptions() Options {
	return Options{
		ShortCircuit:    true,
		DefaultDecision: domain.DecisionAllow,
		Timeout:         DefaultTimeout,
	}
}

// normalize fills unset fields so the engine never has to re-check them.
func (o Options) normalize() Options {
	if o.DefaultDecision == "" {
		o.DefaultDecision = domain.DecisionAllow
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}
