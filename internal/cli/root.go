package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/daily-planner/internal/model"
)

var (
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "planner",
		Short: "Daily planner for goals, tasks and time budgets",
		Long: `planner manages a personal daily plan backed by the planning service.

Run without a subcommand to open the terminal UI. Without a configured user
the planner works offline and keeps everything in the local database.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "path to the config file")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(carryForwardCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(importMailCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
