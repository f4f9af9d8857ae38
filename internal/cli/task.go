// Package cli defines the cobra command tree. Commands stay thin: they
// parse flags, borrow wired adapters, and let services do the work.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/twodo/internal/adapters/cli"
	"github.com/example/twodo/internal/ports/primary"
	"github.com/example/twodo/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long:  "Create, list, and manage tasks with live due-time countdowns",
	}

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskWatchCmd())
	cmd.AddCommand(taskEditCmd())
	cmd.AddCommand(taskDoneCmd())
	cmd.AddCommand(taskRmCmd())

	return cmd
}

// startSync brings the synchronizer up and blocks until the first snapshot
// has been applied, so mirror-dependent commands see current state.
func startSync(ctx context.Context, svc primary.TaskSyncService) error {
	if err := svc.Start(ctx); err != nil {
		return err
	}
	for ev := range svc.Events() {
		switch ev.Type {
		case primary.EventSnapshotApplied:
			return nil
		case primary.EventSubscriptionError:
			return fmt.Errorf("sync failed before the first snapshot: %w", ev.Err)
		}
	}
	return fmt.Errorf("sync ended before the first snapshot")
}

func taskAddCmd() *cobra.Command {
	var due string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a new task",
		Long: `Create a new task with a due time.

Without --lat/--lon the task is pinned to the configured position, if any.

Examples:
  twodo task add "walk the dog" --due "2026-03-14 18:00"
  twodo task add "visit louvre" --due "2026-03-15 10:00" --lat 48.8566 --lon 2.3522`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueAt, err := cliadapter.ParseDueTime(due)
			if err != nil {
				return err
			}

			var pLat, pLon *float64
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				pLat, pLon = &lat, &lon
			}

			return wire.TaskAdapter().Add(cmd.Context(), args[0], dueAt, pLat, pLon)
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due time, e.g. \"2026-03-14 18:00\" (required)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "task latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "task longitude")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with countdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.SyncService()
			if err := startSync(cmd.Context(), svc); err != nil {
				return err
			}
			defer svc.Close()

			return wire.TaskAdapter().List(cmd.Context())
		},
	}
}

func taskWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch tasks, redrawing on every sync event",
		Long:  "Keeps the task list on screen and redraws whenever a snapshot arrives or countdowns re-derive. Stop with Ctrl-C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc := wire.SyncService()
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Close()

			return wire.TaskAdapter().Watch(ctx)
		},
	}
}

func taskEditCmd() *cobra.Command {
	var name, due string

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task's name and due time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueAt, err := cliadapter.ParseDueTime(due)
			if err != nil {
				return err
			}

			svc := wire.SyncService()
			if err := startSync(cmd.Context(), svc); err != nil {
				return err
			}
			defer svc.Close()

			return wire.TaskAdapter().Edit(cmd.Context(), args[0], name, dueAt)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new task name (required)")
	cmd.Flags().StringVar(&due, "due", "", "new due time (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := wire.SyncService()
			if err := startSync(cmd.Context(), svc); err != nil {
				return err
			}
			defer svc.Close()

			return wire.TaskAdapter().Toggle(cmd.Context(), args[0])
		},
	}
}

func taskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TaskAdapter().Delete(cmd.Context(), args[0])
		},
	}
}
