package task

import (
	"testing"
	"time"

	"github.com/example/twodo/internal/models"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestDerivePending(t *testing.T) {
	v := Derive(models.Task{ID: "TASK-000001", DueAt: now.Add(90 * time.Minute)}, now)

	if v.State != models.TaskStatePending {
		t.Fatalf("state = %q, want pending", v.State)
	}
	if v.HoursLeft != 1 || v.MinutesLeft != 30 {
		t.Errorf("remaining = %dh %dm, want 1h 30m", v.HoursLeft, v.MinutesLeft)
	}
	if got := v.Remaining(); got != "1h 30m remaining" {
		t.Errorf("Remaining() = %q", got)
	}
}

func TestDeriveMonotonicAcrossTicks(t *testing.T) {
	task := models.Task{ID: "TASK-000001", DueAt: now.Add(90 * time.Minute)}

	first := Derive(task, now)
	second := Derive(task, now.Add(time.Minute))

	firstTotal := first.HoursLeft*60 + first.MinutesLeft
	secondTotal := second.HoursLeft*60 + second.MinutesLeft
	if secondTotal >= firstTotal {
		t.Errorf("remaining did not decrease: %dm then %dm", firstTotal, secondTotal)
	}
}

func TestDeriveOverdue(t *testing.T) {
	v := Derive(models.Task{ID: "TASK-000002", DueAt: now.Add(-10 * time.Minute)}, now)

	if v.State != models.TaskStateOverdue {
		t.Fatalf("state = %q, want overdue", v.State)
	}
	if v.HoursLeft != 0 || v.MinutesLeft != 0 {
		t.Errorf("overdue countdown must never go negative, got %dh %dm", v.HoursLeft, v.MinutesLeft)
	}
	if got := v.Remaining(); got != "Overdue!" {
		t.Errorf("Remaining() = %q", got)
	}
}

func TestDeriveExactlyDueIsOverdue(t *testing.T) {
	v := Derive(models.Task{ID: "TASK-000003", DueAt: now}, now)
	if v.State != models.TaskStateOverdue {
		t.Errorf("a task due exactly now is overdue, got %q", v.State)
	}
}

func TestDeriveCompletedSuppressesCountdown(t *testing.T) {
	// Completed freezes the display even when the due time has passed.
	v := Derive(models.Task{ID: "TASK-000004", DueAt: now.Add(-time.Hour), Completed: true}, now)

	if v.State != models.TaskStateCompleted {
		t.Fatalf("state = %q, want completed", v.State)
	}
	if got := v.Remaining(); got != "Completed" {
		t.Errorf("Remaining() = %q", got)
	}
}

func TestNormalizeOrdersByDueThenID(t *testing.T) {
	tasks := []models.Task{
		{ID: "TASK-000003", DueAt: now.Add(2 * time.Hour)},
		{ID: "TASK-000002", DueAt: now.Add(time.Hour)},
		{ID: "TASK-000009", DueAt: now.Add(time.Hour)},
		{ID: "TASK-000001", DueAt: now.Add(time.Hour)},
	}

	got := Normalize(tasks)

	wantOrder := []string{"TASK-000001", "TASK-000002", "TASK-000009", "TASK-000003"}
	if len(got) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestNormalizeDropsDuplicateIDs(t *testing.T) {
	tasks := []models.Task{
		{ID: "TASK-000001", DueAt: now, Name: "first"},
		{ID: "TASK-000001", DueAt: now.Add(time.Hour), Name: "dup"},
		{ID: "TASK-000002", DueAt: now},
	}

	got := Normalize(tasks)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, v := range got {
		if v.ID == "TASK-000001" && v.Name != "first" {
			t.Errorf("first occurrence must win, got %q", v.Name)
		}
	}
}

func TestNormalizeDoesNotAliasInput(t *testing.T) {
	tasks := []models.Task{{ID: "TASK-000001", DueAt: now}}
	got := Normalize(tasks)
	got[0].Name = "mutated"
	if tasks[0].Name == "mutated" {
		t.Errorf("Normalize must copy, not alias, its input")
	}
}
