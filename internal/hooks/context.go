package hooks

import (
	"encoding/json"

	"github.com/toolwarden/cli/internal/domain"
)

// BuildContext turns a hook payload into the read-only evaluation context
// handed to decision sources. Payloads without a session id get a generated
// one so downstream accounting still has a key.
func BuildContext(hook domain.HookType, input *HookInput, snapshot *domain.SessionSnapshot) *domain.EvaluationContext {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = domain.GenerateSessionID().String()
	}

	var toolInput map[string]any
	if len(input.ToolInput) > 0 {
		// A tool input that is not a JSON object is left nil; sources only
		// inspect object-shaped input.
		_ = json.Unmarshal(input.ToolInput, &toolInput)
	}

	return &domain.EvaluationContext{
		HookType:       hook,
		SessionID:      sessionID,
		ToolName:       input.ToolName,
		ToolInput:      toolInput,
		WorkingDir:     input.Cwd,
		PermissionMode: input.PermissionMode,
		Session:        snapshot,
	}
}
