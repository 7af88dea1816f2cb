// Package hooks consumes agent hook events on stdin and translates engine
// output into the protocol responses the agent runtime understands.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// HookInput is the JSON payload the agent runtime pipes to a hook.
type HookInput struct {
	SessionID      string          `json:"session_id"`
	HookEventName  string          `json:"hook_event_name,omitempty"`
	ToolName       string          `json:"tool_name,omitempty"`
	ToolInput      json.RawMessage `json:"tool_input,omitempty"`
	Cwd            string          `json:"cwd,omitempty"`
	PermissionMode string          `json:"permission_mode,omitempty"`
	StopHookActive bool            `json:"stop_hook_active,omitempty"`
}

// ReadHookInput decodes a hook payload from the given reader (stdin in
// production).
func ReadHookInput(r io.Reader) (*HookInput, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read hook input: %w", err)
	}
	var input HookInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}
	return &input, nil
}

// PreToolUseResponse answers a PreToolUse hook. Decision is "approve",
// "deny" or "block"; UpdatedInput carries merged input modifications on
// approval.
type PreToolUseResponse struct {
	Decision      string         `json:"decision"`
	Reason        string         `json:"reason,omitempty"`
	SystemMessage string         `json:"systemMessage,omitempty"`
	UpdatedInput  map[string]any `json:"updatedInput,omitempty"`
}

// PermissionResponse answers a PermissionRequest hook. A nil response means
// the handler defers to the caller's normal flow.
type PermissionResponse struct {
	HookSpecificOutput PermissionSpecificOutput `json:"hookSpecificOutput"`
}

// PermissionSpecificOutput is the event-scoped part of the permission
// answer.
type PermissionSpecificOutput struct {
	HookEventName string              `json:"hookEventName"`
	Decision      *PermissionDecision `json:"decision,omitempty"`
}

// PermissionDecision carries the behavior ("allow" or "deny") and an
// optional user-facing message.
type PermissionDecision struct {
	Behavior string `json:"behavior"`
	Message  string `json:"message,omitempty"`
}

// StopResponse answers a Stop hook. A nil response lets the agent stop;
// Decision "block" sends it back to work with Reason explaining why.
type StopResponse struct {
	Decision      string `json:"decision"`
	Reason        string `json:"reason,omitempty"`
	SystemMessage string `json:"systemMessage,omitempty"`
}

// WriteResponse encodes any hook response to the given writer (stdout in
// production).
func WriteResponse(w io.Writer, response any) error {
	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("failed to encode hook response: %w", err)
	}
	return nil
}
