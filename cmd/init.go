package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	config "github.com/toolwarden/cli/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project with a default warden configuration",
	Long: `Create the .warden directory with a default configuration file. Edit
.warden/config.yaml afterwards to add rules, enable the test gate or
set cost budgets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		userspace, _ := cmd.Flags().GetBool("userspace")

		configPath := config.DefaultConfigPath
		if userspace {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			configPath = filepath.Join(home, config.DefaultConfigPath)
		}

		if !overwrite {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists (use --overwrite to replace it)", configPath)
			}
		}

		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", configPath)
		return nil
	},
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().Bool("overwrite", false, "Overwrite an existing config file")
	initCmd.Flags().Bool("userspace", false, "Initialize configuration in the user home directory (~/.warden/)")
	rootCmd.AddCommand(initCmd)
}
