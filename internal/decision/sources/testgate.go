package sources

import (
	"context"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
	gitcmd "github.com/toolwarden/cli/internal/gitcmd"
)

// TestGateSource blocks git commits unless a fresh "tests passed" marker
// exists. Config is read through a closure so hot-reloads are visible
// without re-registering the source.
type TestGateSource struct {
	cfg func() config.TestGateConfig
}

// NewTestGateSource creates the source around a config accessor.
func NewTestGateSource(cfg func() config.TestGateConfig) *TestGateSource {
	return &TestGateSource{cfg: cfg}
}

func (s *TestGateSource) Name() string  { return "test-gate" }
func (s *TestGateSource) Priority() int { return PriorityTestGate }
func (s *TestGateSource) Enabled() bool { return true }

// AppliesTo accepts only PreToolUse; commits happen through tool calls.
func (s *TestGateSource) AppliesTo(hook domain.HookType) bool {
	return hook == domain.HookPreToolUse
}

// Evaluate abstains unless the gate is enabled, the tool is a shell tool,
// and the command is a git commit. A missing or stale marker blocks.
func (s *TestGateSource) Evaluate(_ context.Context, ec *domain.EvaluationContext) (*domain.DecisionResult, error) {
	cfg := s.cfg()
	if !cfg.Enabled {
		return nil, nil
	}
	if !isShellTool(ec.ToolName) {
		return nil, nil
	}

	command, ok := ec.ToolInput["command"].(string)
	if !ok || !gitcmd.IsGitCommit(command) {
		return nil, nil
	}

	status := gitcmd.CheckTestGate(cfg)
	if status.Allowed {
		return nil, nil
	}

	return &domain.DecisionResult{
		Outcome: domain.DecisionBlock,
		Source:  s.Name(),
		Reason:  status.Reason,
		Metadata: map[string]any{
			"marker_path":     cfg.MarkerPath,
			"max_age_seconds": cfg.MaxAgeSeconds,
		},
	}, nil
}

func isShellTool(name string) bool {
	switch name {
	case "Bash", "bash", "Shell", "shell", "run_shell_command":
		return true
	}
	return false
}
