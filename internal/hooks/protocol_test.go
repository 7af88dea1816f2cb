package hooks

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHookInput(t *testing.T) {
	payload := `{
		"session_id": "1700000000-deadbeef",
		"hook_event_name": "PreToolUse",
		"tool_name": "Bash",
		"tool_input": {"command": "git commit -m 'x'"},
		"cwd": "/repo",
		"permission_mode": "default"
	}`

	input, err := ReadHookInput(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "1700000000-deadbeef", input.SessionID)
	assert.Equal(t, "PreToolUse", input.HookEventName)
	assert.Equal(t, "Bash", input.ToolName)
	assert.Equal(t, "/repo", input.Cwd)
	assert.Equal(t, "default", input.PermissionMode)
	assert.JSONEq(t, `{"command": "git commit -m 'x'"}`, string(input.ToolInput))
}

func TestReadHookInput_Malformed(t *testing.T) {
	_, err := ReadHookInput(strings.NewReader("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse hook input")
}

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, &PreToolUseResponse{
		Decision:     "approve",
		UpdatedInput: map[string]any{"command": "ls -la"},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "approve", decoded["decision"])
	assert.Equal(t, "ls -la", decoded["updatedInput"].(map[string]any)["command"])
}

func TestPermissionResponse_WireShape(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResponse(&buf, &PermissionResponse{
		HookSpecificOutput: PermissionSpecificOutput{
			HookEventName: "PermissionRequest",
			Decision:      &PermissionDecision{Behavior: "deny", Message: "no"},
		},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"hookSpecificOutput": {
			"hookEventName": "PermissionRequest",
			"decision": {"behavior": "deny", "message": "no"}
		}
	}`, buf.String())
}

func TestStopResponse_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, &StopResponse{Decision: "block", Reason: "keep going"}))

	assert.JSONEq(t, `{"decision": "block", "reason": "keep going"}`, buf.String())
}
