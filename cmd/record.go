package cmd

import (
	"context"
	"fmt"
	"strconv"

	cobra "github.com/spf13/cobra"

	"github.com/toolwarden/cli/internal/costtracker"
)

var recordCmd = &cobra.Command{
	Use:   "record <session-id> <model> <input-tokens> <output-tokens>",
	Short: "Record token usage against the cost budgets",
	Long: `Prices one model request with the configured pricing table and writes
it to the cost store. Wire this into your agent's post-response hook so
the budget checks see real spend, for example:

  warden record "$SESSION_ID" anthropic/claude-3-5-haiku-20241022 1200 350`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := costtracker.NewStore(cfg.CostStore)
		if err != nil {
			return fmt.Errorf("failed to open cost store: %w", err)
		}
		tracker := costtracker.NewTracker(store, cfg.Pricing)
		defer func() { _ = tracker.Close() }()

		cost, err := recordUsage(cmd.Context(), tracker, args)
		if err != nil {
			return err
		}
		fmt.Printf("recorded $%.4f for session %s\n", cost, args[0])
		return nil
	},
}

// recordUsage parses the positional arguments and records the priced entry.
func recordUsage(ctx context.Context, tracker *costtracker.Tracker, args []string) (float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	inputTokens, err := strconv.Atoi(args[2])
	if err != nil {
		return 0, fmt.Errorf("invalid input token count %q: %w", args[2], err)
	}
	outputTokens, err := strconv.Atoi(args[3])
	if err != nil {
		return 0, fmt.Errorf("invalid output token count %q: %w", args[3], err)
	}

	return tracker.RecordTokens(ctx, args[0], args[1], inputTokens, outputTokens)
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
