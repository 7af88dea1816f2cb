package cmd

import (
	"fmt"
	"os"

	gotenv "github.com/subosito/gotenv"

	config "github.com/toolwarden/cli/config"
	logger "github.com/toolwarden/cli/internal/logger"
	cobra "github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Policy arbitration for AI coding agents",
	Long: `warden mediates agent actions through configurable decision sources.
Wire its hook subcommands into your agent's hook configuration and it
will arbitrate tool calls, permission prompts and session stops against
your rules, test gate, cost budgets and optional LLM review.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("warden: policy arbitration for AI coding agents")
		fmt.Println("Use 'warden hook --help' to see the hook entry points, or --help for all commands.")
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	_ = gotenv.Load()

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	explicit, _ := rootCmd.PersistentFlags().GetString("config")

	configPath := config.GetConfigPath(explicit)
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	cfg = loaded

	logger.Init(verbose)
}
