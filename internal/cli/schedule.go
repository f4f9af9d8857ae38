package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/twodo/internal/wire"
)

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan daily schedules",
		Long:  "Split a day's available hours across urgent tasks, important tasks, breaks and flexible time",
	}

	cmd.AddCommand(schedulePlanCmd())
	cmd.AddCommand(scheduleSaveCmd())
	cmd.AddCommand(scheduleHistoryCmd())

	return cmd
}

func schedulePlanCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "plan [total-hours] [urgent-count] [important-count]",
		Short: "Compute a schedule allocation",
		Long: `Compute a time-budget allocation from available hours and task counts.

Inputs are passed through exactly as typed; invalid input is rejected
without producing a partial schedule.

Examples:
  twodo schedule plan 8 4 2
  twodo schedule plan 7.5 3 1 --save`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ScheduleAdapter().Plan(cmd.Context(), args[0], args[1], args[2], save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "also save the allocation to history")

	return cmd
}

func scheduleSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [total-hours] [urgent-count] [important-count]",
		Short: "Compute and save a schedule allocation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ScheduleAdapter().Plan(cmd.Context(), args[0], args[1], args[2], true)
		},
	}
}

func scheduleHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved schedules, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ScheduleAdapter().History(cmd.Context())
		},
	}
}
