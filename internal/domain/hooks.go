package domain

import "time"

// HookType identifies the agent lifecycle event being arbitrated.
type HookType string

const (
	HookPreToolUse        HookType = "PreToolUse"
	HookPostToolUse       HookType = "PostToolUse"
	HookPermissionRequest HookType = "PermissionRequest"
	HookUserPromptSubmit  HookType = "UserPromptSubmit"
	HookStop              HookType = "Stop"
	HookSessionStart      HookType = "SessionStart"
	HookSessionEnd        HookType = "SessionEnd"
)

// HookTypes lists every hook type the engine can arbitrate.
var HookTypes = []HookType{
	HookPreToolUse,
	HookPostToolUse,
	HookPermissionRequest,
	HookUserPromptSubmit,
	HookStop,
	HookSessionStart,
	HookSessionEnd,
}

// SessionSnapshot carries the session counters captured by the caller before
// evaluation starts. Sources read it; they must never write to it.
type SessionSnapshot struct {
	InputTokens    int       `json:"input_tokens"`
	OutputTokens   int       `json:"output_tokens"`
	RequestCount   int       `json:"request_count"`
	SessionCostUSD float64   `json:"session_cost_usd"`
	DailyCostUSD   float64   `json:"daily_cost_usd"`
	MonthlyCostUSD float64   `json:"monthly_cost_usd"`
	LastAutosave   time.Time `json:"last_autosave,omitempty"`
	LastTestPass   time.Time `json:"last_test_pass,omitempty"`
}

// EvaluationContext is the read-only input handed to every decision source.
// ToolName, ToolInput, WorkingDir and PermissionMode are only set for hook
// types that carry them; Session is only populated by callers that track
// token and cost counters.
type EvaluationContext struct {
	HookType       HookType
	SessionID      string
	ToolName       string
	ToolInput      map[string]any
	WorkingDir     string
	PermissionMode string
	Session        *SessionSnapshot
}
