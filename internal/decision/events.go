package decision

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/toolwarden/cli/internal/domain"
)

// DecisionEvent is emitted to listeners after every completed evaluation.
type DecisionEvent struct {
	ID        string                           `json:"id"`
	Timestamp time.Time                        `json:"timestamp"`
	HookType  domain.HookType                  `json:"hook_type"`
	SessionID string                           `json:"session_id"`
	ToolName  string                           `json:"tool_name,omitempty"`
	Result    *domain.AggregatedDecisionResult `json:"result"`
}

func newDecisionEvent(ec *domain.EvaluationContext, agg *domain.AggregatedDecisionResult) DecisionEvent {
	return DecisionEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		HookType:  ec.HookType,
		SessionID: ec.SessionID,
		ToolName:  ec.ToolName,
		Result:    agg,
	}
}

// Listener observes decision events. Listeners run synchronously on the
// deciding goroutine; a panicking listener is contained and the rest still
// run.
type Listener func(DecisionEvent)

// Subscription identifies one registered listener.
type Subscription struct {
	id       int
	registry *listenerRegistry
}

// Cancel removes the listener. Cancelling twice is harmless.
func (s Subscription) Cancel() {
	if s.registry != nil {
		s.registry.remove(s.id)
	}
}

type listenerRegistry struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[int]Listener)}
}

func (r *listenerRegistry) add(l Listener) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.listeners[r.nextID] = l
	return Subscription{id: r.nextID, registry: r}
}

func (r *listenerRegistry) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, id)
}

func (r *listenerRegistry) notify(event DecisionEvent) {
	r.mu.RLock()
	snapshot := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		snapshot = append(snapshot, l)
	}
	r.mu.RUnlock()

	for _, l := range snapshot {
		func() {
			defer func() {
				// A misbehaving observer must not corrupt the decision
				// pipeline or starve the other listeners.
				_ = recover()
			}()
			l(event)
		}()
	}
}

// Subscribe registers a listener for decision events.
func (e *Engine) Subscribe(l Listener) Subscription {
	return e.listeners.add(l)
}
