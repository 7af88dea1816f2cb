// Package llm renders judge prompts, parses verdicts, and adapts LLM SDKs
// to the JudgeProvider contract consumed by the LLM decision source.
package llm

import (
	"encoding/json"
	"regexp"

	domain "github.com/toolwarden/cli/internal/domain"
)

// Prompt templates keyed by hook type. Placeholders use {{name}} syntax and
// are filled from the evaluation context; missing values render empty.
var templates = map[domain.HookType]string{
	domain.HookPreToolUse: `You are a security reviewer for an AI coding agent.
The agent wants to call the tool {{tool_name}} with input:
{{tool_input}}

Working directory: {{working_dir}}
Permission mode: {{permission_mode}}

Respond with a single JSON object: {"decision": "allow" | "deny" | "block" | "abstain", "reason": "...", "confidence": 0.0-1.0}.
Deny anything destructive, data-exfiltrating, or outside the working directory.`,

	domain.HookPermissionRequest: `You are a security reviewer for an AI coding agent.
The agent is requesting permission to use the tool {{tool_name}} with input:
{{tool_input}}

Working directory: {{working_dir}}

Respond with a single JSON object: {"decision": "allow" | "deny" | "abstain", "reason": "...", "confidence": 0.0-1.0}.
Only allow requests a careful human reviewer would approve without hesitation.`,

	domain.HookStop: `You are reviewing whether an AI coding agent should stop working on its task.
Session: {{session_id}}

Respond with a single JSON object: {"decision": "allow" | "block" | "abstain", "reason": "...", "confidence": 0.0-1.0}.
Block the stop only if the session state clearly shows unfinished critical work.`,

	domain.HookUserPromptSubmit: `You are a security reviewer for an AI coding agent.
The user submitted a prompt in session {{session_id}}.

Respond with a single JSON object: {"decision": "allow" | "deny" | "abstain", "reason": "...", "confidence": 0.0-1.0}.`,
}

// TemplateFor returns the prompt template for a hook type, if one exists.
func TemplateFor(hook domain.HookType) (string, bool) {
	t, ok := templates[hook]
	return t, ok
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// Render fills {{placeholder}} tokens from the evaluation context. Structured
// values are JSON-serialized; unknown placeholders render empty.
func Render(template string, ec *domain.EvaluationContext) string {
	values := map[string]string{
		"hook_type":       string(ec.HookType),
		"session_id":      ec.SessionID,
		"tool_name":       ec.ToolName,
		"working_dir":     ec.WorkingDir,
		"permission_mode": ec.PermissionMode,
	}
	if ec.ToolInput != nil {
		if raw, err := json.Marshal(ec.ToolInput); err == nil {
			values["tool_input"] = string(raw)
		}
	}
	if ec.Session != nil {
		if raw, err := json.Marshal(ec.Session); err == nil {
			values["session"] = string(raw)
		}
	}

	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return values[key]
	})
}
