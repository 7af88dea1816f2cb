package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/toolwarden/cli/internal/domain"
)

func TestTemplateFor(t *testing.T) {
	for _, hook := range []domain.HookType{
		domain.HookPreToolUse,
		domain.HookPermissionRequest,
		domain.HookStop,
		domain.HookUserPromptSubmit,
	} {
		t.Run(string(hook), func(t *testing.T) {
			template, ok := TemplateFor(hook)
			assert.True(t, ok)
			assert.NotEmpty(t, template)
		})
	}

	_, ok := TemplateFor(domain.HookType("Unknown"))
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	ec := &domain.EvaluationContext{
		HookType:       domain.HookPreToolUse,
		SessionID:      "1700000000-deadbeef",
		ToolName:       "Bash",
		ToolInput:      map[string]any{"command": "rm -rf /"},
		WorkingDir:     "/repo",
		PermissionMode: "default",
	}

	template, ok := TemplateFor(domain.HookPreToolUse)
	require.True(t, ok)

	rendered := Render(template, ec)

	assert.Contains(t, rendered, "Bash")
	assert.Contains(t, rendered, `"command":"rm -rf /"`)
	assert.Contains(t, rendered, "/repo")
	assert.Contains(t, rendered, "default")
	assert.NotContains(t, rendered, "{{")
}

func TestRender_MissingValuesRenderEmpty(t *testing.T) {
	rendered := Render("tool={{tool_name}} input={{tool_input}} x={{unknown_key}}", &domain.EvaluationContext{})
	assert.Equal(t, "tool= input= x=", rendered)
}

func TestRender_SessionSnapshot(t *testing.T) {
	ec := &domain.EvaluationContext{
		Session: &domain.SessionSnapshot{SessionCostUSD: 1.25, RequestCount: 3},
	}
	rendered := Render("{{session}}", ec)
	assert.Contains(t, rendered, `"session_cost_usd":1.25`)
	assert.Contains(t, rendered, `"request_count":3`)
}
