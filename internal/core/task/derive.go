// Package task contains the pure business logic for the task mirror.
// Derivation and normalization are side-effect free: they read stored fields
// plus a caller-supplied clock and compute display state, so the 60-second
// refresh never touches the store.
package task

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/twodo/internal/models"
)

// View is the derived, display-only state of one task at a given instant.
// It is never persisted back to the store.
type View struct {
	Task models.Task

	State       string // models.TaskStatePending / Overdue / Completed
	HoursLeft   int64  // whole hours remaining, floored, never negative
	MinutesLeft int64  // remainder minutes, floored, never negative
}

// Remaining renders the countdown label for the view. A completed task's
// countdown is suppressed regardless of its due time.
func (v View) Remaining() string {
	switch v.State {
	case models.TaskStateCompleted:
		return "Completed"
	case models.TaskStateOverdue:
		return "Overdue!"
	default:
		return fmt.Sprintf("%dh %dm remaining", v.HoursLeft, v.MinutesLeft)
	}
}

// Derive computes the display state of a single task against now.
func Derive(t models.Task, now time.Time) View {
	v := View{Task: t}

	if t.Completed {
		v.State = models.TaskStateCompleted
		return v
	}

	remainingMs := t.DueAt.Sub(now).Milliseconds()
	if remainingMs <= 0 {
		v.State = models.TaskStateOverdue
		return v
	}

	v.State = models.TaskStatePending
	v.HoursLeft = remainingMs / (60 * 60 * 1000)
	v.MinutesLeft = (remainingMs % (60 * 60 * 1000)) / (60 * 1000)
	return v
}

// DeriveAll computes display state for every task in order.
func DeriveAll(tasks []models.Task, now time.Time) []View {
	views := make([]View, len(tasks))
	for i, t := range tasks {
		views[i] = Derive(t, now)
	}
	return views
}

// Normalize returns a defensive copy of tasks with duplicates removed and
// display order re-validated: ascending due time, ties broken by ascending
// id. The store promises this order; the mirror re-checks it before display.
func Normalize(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID != "" && seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
