package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"

	"github.com/toolwarden/cli/internal/decision"
	"github.com/toolwarden/cli/internal/hooks"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Hook entry points for the agent runtime",
	Long: `Each subcommand reads one hook payload from stdin, runs it through
the decision engine and writes the protocol response to stdout. Wire
these into your agent's hook configuration, for example:

  PreToolUse        -> warden hook pretooluse
  PermissionRequest -> warden hook permissionrequest
  Stop              -> warden hook stop`,
}

var preToolUseCmd = &cobra.Command{
	Use:   "pretooluse",
	Short: "Arbitrate a tool call before it executes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(func(deps hookDeps) (any, error) {
			handler := hooks.NewPreToolUseHandler(deps.engine, deps.recorder)
			return handler.Handle(cmd.Context(), deps.input)
		})
	},
}

var permissionRequestCmd = &cobra.Command{
	Use:   "permissionrequest",
	Short: "Arbitrate a permission prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(func(deps hookDeps) (any, error) {
			handler := hooks.NewPermissionHandler(deps.engine, deps.recorder)
			response, err := handler.Handle(cmd.Context(), deps.input)
			if response == nil {
				return nil, err
			}
			return response, err
		})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Arbitrate a session stop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(func(deps hookDeps) (any, error) {
			handler := hooks.NewStopHandler(deps.engine, deps.recorder)
			response, err := handler.Handle(cmd.Context(), deps.input)
			if response == nil {
				return nil, err
			}
			return response, err
		})
	},
}

type hookDeps struct {
	engine   *decision.Engine
	recorder *hooks.Recorder
	input    *hooks.HookInput
}

// runHook shares the stdin-to-stdout plumbing of the hook subcommands. A
// nil response from the handler produces no output, which the runtime
// treats as "no opinion".
func runHook(handle func(hookDeps) (any, error)) error {
	input, err := hooks.ReadHookInput(os.Stdin)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to build decision engine: %w", err)
	}
	defer cleanup()

	recorder, err := hooks.NewRecorder(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("failed to open state directory: %w", err)
	}

	response, err := handle(hookDeps{engine: engine, recorder: recorder, input: input})
	if err != nil {
		return err
	}
	if response == nil {
		return nil
	}
	return hooks.WriteResponse(os.Stdout, response)
}

func init() {
	hookCmd.AddCommand(preToolUseCmd)
	hookCmd.AddCommand(permissionRequestCmd)
	hookCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(hookCmd)
}
