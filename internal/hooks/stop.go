package hooks

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/toolwarden/cli/internal/decision"
	"github.com/toolwarden/cli/internal/domain"
	"github.com/toolwarden/cli/internal/logger"
)

// maxAutoContinues caps how many times a session's stop can be refused, so
// a permanently-over-budget session cannot loop forever.
const maxAutoContinues = 10

// StopHandler arbitrates session stops.
type StopHandler struct {
	engine   *decision.Engine
	recorder *Recorder
}

// NewStopHandler creates the handler.
func NewStopHandler(engine *decision.Engine, recorder *Recorder) *StopHandler {
	return &StopHandler{engine: engine, recorder: recorder}
}

// Handle translates the aggregated decision: deny or block refuses the
// stop, naming the deciding source; anything else returns nil and the
// agent stops normally.
func (h *StopHandler) Handle(ctx context.Context, input *HookInput) (*StopResponse, error) {
	ec := BuildContext(domain.HookStop, input, nil)
	agg := h.engine.Decide(ctx, ec)

	if !agg.Blocked() {
		return nil, nil
	}

	if h.recorder != nil {
		count, err := h.recorder.IncrementAutoContinue(ec.SessionID)
		if err != nil {
			logger.L(ctx).Warn("failed to persist auto-continue counter", zap.Error(err))
		}
		if count > maxAutoContinues {
			logger.L(ctx).Warn("auto-continue cap reached, letting session stop",
				zap.String("session_id", ec.SessionID), zap.Int("count", count))
			return nil, nil
		}
	}

	reason := agg.Reason
	if reason == "" {
		reason = "stop refused by policy"
	}
	return &StopResponse{
		Decision:      "block",
		Reason:        fmt.Sprintf("%s (source: %s)", reason, agg.DecidingSource),
		SystemMessage: agg.SystemMessage,
	}, nil
}
