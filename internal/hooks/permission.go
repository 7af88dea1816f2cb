package hooks

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toolwarden/cli/internal/decision"
	"github.com/toolwarden/cli/internal/domain"
	"github.com/toolwarden/cli/internal/logger"
)

// PermissionHandler arbitrates permission prompts. It only auto-decides
// clear-cut cases; everything else defers to the caller's normal prompt.
type PermissionHandler struct {
	engine   *decision.Engine
	recorder *Recorder
}

// NewPermissionHandler creates the handler.
func NewPermissionHandler(engine *decision.Engine, recorder *Recorder) *PermissionHandler {
	return &PermissionHandler{engine: engine, recorder: recorder}
}

// Handle translates the aggregated decision: a source-rendered allow becomes
// allow, deny and block both become deny, and anything else returns nil so
// the user is prompted as usual. An allow that only came from the engine's
// default decision defers too; silence from every source must not suppress
// the prompt.
func (h *PermissionHandler) Handle(ctx context.Context, input *HookInput) (*PermissionResponse, error) {
	ec := BuildContext(domain.HookPermissionRequest, input, nil)
	agg := h.engine.Decide(ctx, ec)

	var behavior string
	switch agg.FinalDecision {
	case domain.DecisionAllow:
		if agg.DecidingSource == domain.DefaultDecidingSource {
			return nil, nil
		}
		behavior = "allow"
	case domain.DecisionDeny, domain.DecisionBlock:
		behavior = "deny"
		if h.recorder != nil {
			err := h.recorder.RecordSecurityBlock(SecurityBlock{
				Timestamp: time.Now(),
				SessionID: ec.SessionID,
				HookType:  string(ec.HookType),
				ToolName:  ec.ToolName,
				Source:    agg.DecidingSource,
				Reason:    agg.Reason,
			})
			if err != nil {
				logger.L(ctx).Warn("failed to record security block", zap.Error(err))
			}
		}
	default:
		return nil, nil
	}

	return &PermissionResponse{
		HookSpecificOutput: PermissionSpecificOutput{
			HookEventName: string(domain.HookPermissionRequest),
			Decision: &PermissionDecision{
				Behavior: behavior,
				Message:  agg.Reason,
			},
		},
	}, nil
}
