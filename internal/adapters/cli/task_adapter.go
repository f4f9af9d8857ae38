// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/twodo/internal/models"
	"github.com/example/twodo/internal/ports/primary"
)

// dueTimeLayout is the format accepted for due times on the command line.
const dueTimeLayout = "2006-01-02 15:04"

// TaskAdapter is a thin adapter that translates CLI operations to
// TaskSyncService calls. It depends only on the service interface, enabling
// easy testing with mocks.
type TaskAdapter struct {
	service primary.TaskSyncService
	out     io.Writer
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskSyncService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{
		service: service,
		out:     out,
	}
}

// ParseDueTime parses a command-line due time in local time.
func ParseDueTime(value string) (time.Time, error) {
	due, err := time.ParseInLocation(dueTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due time %q, want e.g. \"2026-03-14 18:00\"", value)
	}
	return due, nil
}

// Add creates a new task.
func (a *TaskAdapter) Add(ctx context.Context, name string, dueAt time.Time, lat, lon *float64) error {
	resp, err := a.service.CreateTask(ctx, primary.CreateTaskRequest{
		Name:      name,
		DueAt:     dueAt,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created task %s: %s\n", resp.TaskID, name)
	return nil
}

// List renders the current mirror snapshot.
func (a *TaskAdapter) List(ctx context.Context) error {
	views := a.service.Snapshot()

	if len(views) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-17s %-22s %s\n", "ID", "DUE", "COUNTDOWN", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, v := range views {
		fmt.Fprintf(a.out, "%-12s %-17s %-22s %s\n",
			v.ID, v.DueAt.Local().Format(dueTimeLayout), renderRemaining(v), v.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Edit updates a task's name and due time.
func (a *TaskAdapter) Edit(ctx context.Context, taskID, name string, dueAt time.Time) error {
	err := a.service.UpdateTask(ctx, primary.UpdateTaskRequest{
		TaskID: taskID,
		Name:   name,
		DueAt:  dueAt,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Task %s updated\n", taskID)
	return nil
}

// Toggle flips a task's completed flag.
func (a *TaskAdapter) Toggle(ctx context.Context, taskID string) error {
	if err := a.service.ToggleCompleted(ctx, taskID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Task %s toggled\n", taskID)
	return nil
}

// Delete removes a task.
func (a *TaskAdapter) Delete(ctx context.Context, taskID string) error {
	if err := a.service.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted task %s\n", taskID)
	return nil
}

// Watch renders the task list after every sync event until the context ends
// or the event channel closes.
func (a *TaskAdapter) Watch(ctx context.Context) error {
	if err := a.List(ctx); err != nil {
		return err
	}

	events := a.service.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				return nil
			}
			switch ev.Type {
			case primary.EventSubscriptionError:
				fmt.Fprintf(a.out, "%s %v\n", color.New(color.FgYellow).Sprint("sync error:"), ev.Err)
			default:
				if err := a.List(ctx); err != nil {
					return err
				}
			}
		}
	}
}

// renderRemaining colors the countdown: overdue red, completed green.
func renderRemaining(v primary.TaskView) string {
	switch v.State {
	case models.TaskStateOverdue:
		return color.New(color.FgRed).Sprint(v.Remaining)
	case models.TaskStateCompleted:
		return color.New(color.FgGreen).Sprint(v.Remaining)
	default:
		return v.Remaining
	}
}
