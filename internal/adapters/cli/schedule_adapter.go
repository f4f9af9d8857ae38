package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/twodo/internal/models"
	"github.com/example/twodo/internal/ports/primary"
)

// ScheduleAdapter is a thin adapter that translates CLI operations to
// ScheduleService calls.
type ScheduleAdapter struct {
	service primary.ScheduleService
	out     io.Writer
}

// NewScheduleAdapter creates a new ScheduleAdapter with the given service.
func NewScheduleAdapter(service primary.ScheduleService, out io.Writer) *ScheduleAdapter {
	return &ScheduleAdapter{
		service: service,
		out:     out,
	}
}

// Plan computes and renders an allocation from raw inputs. When save is set
// the allocation is also appended to the user's history.
func (a *ScheduleAdapter) Plan(ctx context.Context, totalHours, urgentCount, importantCount string, save bool) error {
	alloc, err := a.service.Plan(ctx, primary.PlanRequest{
		TotalHours:     totalHours,
		UrgentCount:    urgentCount,
		ImportantCount: importantCount,
	})
	if err != nil {
		return err
	}

	a.renderAllocation(*alloc)

	if save {
		id, err := a.service.SavePlan(ctx, *alloc)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Saved schedule %s\n", id)
	}
	return nil
}

// History lists saved allocations, newest first.
func (a *ScheduleAdapter) History(ctx context.Context) error {
	saved, err := a.service.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schedule history: %w", err)
	}

	if len(saved) == 0 {
		fmt.Fprintln(a.out, "No saved schedules")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-14s %-17s %7s %8s %8s\n", "ID", "SAVED", "HOURS", "URGENT", "IMPORTANT")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range saved {
		fmt.Fprintf(a.out, "%-14s %-17s %7.1f %8d %8d\n",
			s.ID, s.SavedAt.Local().Format(dueTimeLayout), s.TotalHours, s.UrgentCount, s.ImportantCount)
	}
	fmt.Fprintln(a.out)

	return nil
}

func (a *ScheduleAdapter) renderAllocation(alloc models.Allocation) {
	heading := color.New(color.FgCyan).Sprint("Schedule for")
	fmt.Fprintf(a.out, "\n%s %.1f hours\n", heading, alloc.TotalHours)
	fmt.Fprintf(a.out, "  Urgent tasks:    %.1fh", alloc.UrgentBlock)
	if alloc.UrgentCount > 0 {
		fmt.Fprintf(a.out, "  (%.1fh each across %d)", alloc.PerUrgentTask, alloc.UrgentCount)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "  Important tasks: %.1fh", alloc.ImportantBlock)
	if alloc.ImportantCount > 0 {
		fmt.Fprintf(a.out, "  (%.1fh each across %d)", alloc.PerImportantTask, alloc.ImportantCount)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "  Breaks:          %.1fh\n", alloc.BreakBlock)
	fmt.Fprintf(a.out, "  Flexible:        %.1fh\n", alloc.FlexBlock)
	fmt.Fprintln(a.out)
}
