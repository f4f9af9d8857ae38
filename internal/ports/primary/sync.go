// Package primary defines the primary ports (driving interfaces) of the
// engine, consumed by the presentation layer.
package primary

import (
	"context"
	"time"
)

// TaskSyncService defines the primary port for the task synchronizer: it
// owns the local mirror of the current user's tasks and keeps derived
// countdown state fresh.
type TaskSyncService interface {
	// Start opens the standing store subscription and the periodic
	// derivation timer. It fails when no identity is active or when the
	// service is already running.
	Start(ctx context.Context) error

	// Close tears the service down: the timer never fires again and no
	// further snapshot is applied. Safe to call more than once.
	Close() error

	// Snapshot returns a read-only copy of the current derived views,
	// ordered by due time ascending (ties by ascending id).
	Snapshot() []TaskView

	// Events returns the stream of sync events. The channel closes
	// after Close.
	Events() <-chan SyncEvent

	// CreateTask creates a new task; the store assigns the id.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error)

	// UpdateTask patches exactly the name and due time of a task.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) error

	// ToggleCompleted flips the completed flag relative to the last
	// known mirror value. Concurrent toggles from two clients race;
	// last writer wins.
	ToggleCompleted(ctx context.Context, taskID string) error

	// DeleteTask deletes a task. Deleting an already-deleted id is
	// success-equivalent.
	DeleteTask(ctx context.Context, taskID string) error
}

// CreateTaskRequest contains parameters for creating a task. Nil
// coordinates are filled best-effort from the geolocation provider.
type CreateTaskRequest struct {
	Name      string
	DueAt     time.Time
	Latitude  *float64
	Longitude *float64
}

// CreateTaskResponse contains the result of creating a task.
type CreateTaskResponse struct {
	TaskID string
}

// UpdateTaskRequest contains parameters for updating a task.
type UpdateTaskRequest struct {
	TaskID string
	Name   string
	DueAt  time.Time
}

// TaskView is one task together with its derived display state.
type TaskView struct {
	ID        string
	Name      string
	DueAt     time.Time
	Latitude  *float64
	Longitude *float64
	Completed bool

	State       string // models.TaskStatePending / Overdue / Completed
	HoursLeft   int64
	MinutesLeft int64
	Remaining   string // "1h 30m remaining", "Overdue!" or "Completed"
}

// SyncEventType classifies a sync event.
type SyncEventType string

const (
	// EventSnapshotApplied fires when a store snapshot replaced the mirror.
	EventSnapshotApplied SyncEventType = "snapshot_applied"
	// EventDerivationTick fires when the periodic timer re-derived views.
	EventDerivationTick SyncEventType = "derivation_tick"
	// EventSubscriptionError fires when the subscription reported a
	// transport failure. The engine keeps running.
	EventSubscriptionError SyncEventType = "subscription_error"
)

// SyncEvent is one observable engine event.
type SyncEvent struct {
	Type      SyncEventType
	TaskCount int
	Err       error // set for EventSubscriptionError
	At        time.Time
}
