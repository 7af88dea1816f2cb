package hooks

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toolwarden/cli/internal/decision"
	"github.com/toolwarden/cli/internal/domain"
	"github.com/toolwarden/cli/internal/logger"
)

// PreToolUseHandler arbitrates tool calls before they execute.
type PreToolUseHandler struct {
	engine   *decision.Engine
	recorder *Recorder
}

// NewPreToolUseHandler creates the handler. The recorder may be nil when
// block auditing is not wanted.
func NewPreToolUseHandler(engine *decision.Engine, recorder *Recorder) *PreToolUseHandler {
	return &PreToolUseHandler{engine: engine, recorder: recorder}
}

// Handle translates the aggregated decision: deny stays deny, block stays
// block, everything else approves, carrying merged input modifications.
func (h *PreToolUseHandler) Handle(ctx context.Context, input *HookInput) (*PreToolUseResponse, error) {
	ec := BuildContext(domain.HookPreToolUse, input, nil)
	agg := h.engine.Decide(ctx, ec)

	response := &PreToolUseResponse{
		Reason:        agg.Reason,
		SystemMessage: agg.SystemMessage,
	}

	switch agg.FinalDecision {
	case domain.DecisionDeny:
		response.Decision = "deny"
		h.recordBlock(ctx, ec, agg)
	case domain.DecisionBlock:
		response.Decision = "block"
		h.recordBlock(ctx, ec, agg)
	default:
		response.Decision = "approve"
		response.UpdatedInput = agg.Modifications
	}
	return response, nil
}

func (h *PreToolUseHandler) recordBlock(ctx context.Context, ec *domain.EvaluationContext, agg *domain.AggregatedDecisionResult) {
	if h.recorder == nil {
		return
	}
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
