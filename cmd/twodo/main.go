package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/twodo/internal/cli"
	"github.com/example/twodo/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "twodo",
		Short:   "twodo - synced tasks with live countdowns",
		Version: version.String(),
		Long: `twodo keeps a live mirror of your tasks, derives due-time countdowns
locally, and plans daily schedules from a fixed time-budget split.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.ScheduleCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
