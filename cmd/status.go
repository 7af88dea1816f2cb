package cmd

import (
	"context"
	"fmt"
	"time"

	cobra "github.com/spf13/cobra"

	"github.com/toolwarden/cli/internal/costtracker"
	"github.com/toolwarden/cli/internal/decision/sources"
	"github.com/toolwarden/cli/internal/gitcmd"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured sources, test gate and budget usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := buildEngine(cfg)
		if err != nil {
			return fmt.Errorf("failed to build decision engine: %w", err)
		}
		defer cleanup()

		stats := engine.GetStats()
		fmt.Printf("Decision sources: %d configured, %d enabled\n", stats.TotalSources, stats.EnabledSources)
		for _, s := range stats.Sources {
			state := "enabled"
			if !s.Enabled {
				state = "disabled"
			}
			fmt.Printf("  %-12s priority %-4d %s\n", s.Name, s.Priority, state)
		}

		printTestGate()
		return printBudgets(cmd.Context())
	},
}

func printTestGate() {
	fmt.Println()
	if !cfg.TestGate.Enabled {
		fmt.Println("Test gate: disabled")
		return
	}
	status := gitcmd.CheckTestGate(cfg.TestGate)
	if status.Allowed {
		fmt.Printf("Test gate: passing (marker %s)\n", cfg.TestGate.MarkerPath)
	} else {
		fmt.Printf("Test gate: blocking commits (%s)\n", status.Reason)
	}
}

func printBudgets(ctx context.Context) error {
	fmt.Println()
	if !cfg.CostControls.Enabled {
		fmt.Println("Cost controls: disabled")
		return nil
	}

	store, err := costtracker.NewStore(cfg.CostStore)
	if err != nil {
		fmt.Printf("Cost controls: store unavailable (%v)\n", err)
		return nil
	}
	tracker := costtracker.NewTracker(store, cfg.Pricing)
	defer func() { _ = tracker.Close() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fmt.Println("Cost controls: enabled")
	daily, err := tracker.GetDailyCost(ctx)
	if err != nil {
		return fmt.Errorf("failed to read daily cost: %w", err)
	}
	printBudgetLine("Daily", daily, cfg.CostControls.DailyBudgetUSD)

	monthly, err := tracker.GetMonthlyCost(ctx)
	if err != nil {
		return fmt.Errorf("failed to read monthly cost: %w", err)
	}
	printBudgetLine("Monthly", monthly, cfg.CostControls.MonthlyBudgetUSD)
	return nil
}

func printBudgetLine(scope string, current float64, limit *float64) {
	if limit == nil {
		fmt.Printf("  %-8s $%.2f (no budget)\n", scope, current)
		return
	}
	fmt.Printf("  %-8s $%.2f / $%.2f (%.0f%%)\n", scope, current, *limit,
		sources.BudgetUsagePercent(current, *limit))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
