// Package secondary defines the secondary ports (driven adapters) for the
// engine. These are the interfaces through which it drives the remote task
// store and the identity/geolocation collaborators.
package secondary

import (
	"context"
	"time"
)

// TaskRecord represents a task as stored in the remote task store.
// The field set is the store's document schema.
type TaskRecord struct {
	ID        string
	UserID    string
	Name      string
	DueAt     time.Time
	Latitude  *float64
	Longitude *float64
	Completed bool
	CreatedAt time.Time
}

// TaskPatch is a partial-field update. Nil fields are left untouched.
type TaskPatch struct {
	Name      *string
	DueAt     *time.Time
	Completed *bool
}

// TaskSubscription is one standing subscription to a user's task set.
type TaskSubscription interface {
	// Snapshots delivers the full current result set whenever the
	// underlying data changes, ordered by due time ascending. The first
	// snapshot arrives shortly after subscribing. The channel closes
	// after Close.
	Snapshots() <-chan []TaskRecord

	// Errs delivers transport-level subscription failures. A failure
	// does not end the subscription; a later snapshot resumes normal
	// delivery.
	Errs() <-chan error

	// Close ends the subscription. No snapshot is delivered after Close
	// returns.
	Close() error
}

// RemoteTaskStore defines the secondary port for the authoritative task
// collection. Implementations must scope every query to the owning user.
type RemoteTaskStore interface {
	// Insert persists a new task and returns the store-assigned id.
	Insert(ctx context.Context, rec TaskRecord) (string, error)

	// Patch applies a partial-field update to a task.
	Patch(ctx context.Context, id string, patch TaskPatch) error

	// Delete removes a task. Deleting an unknown id is not an error at
	// the protocol level.
	Delete(ctx context.Context, id string) error

	// Get retrieves a single task by id.
	Get(ctx context.Context, id string) (*TaskRecord, error)

	// List retrieves the user's tasks ordered by due time ascending,
	// ties broken by ascending id.
	List(ctx context.Context, userID string) ([]TaskRecord, error)

	// Subscribe opens a snapshot subscription filtered by owning user.
	Subscribe(ctx context.Context, userID string) (TaskSubscription, error)
}

// AccountService defines the secondary port for the identity collaborator.
type AccountService interface {
	// CurrentUserID returns the active user identity, or "" when no
	// user is logged in.
	CurrentUserID(ctx context.Context) string
}

// Position is a geographic coordinate pair in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// GeolocationProvider defines the secondary port for best-effort position
// lookup. No freshness or presence guarantee.
type GeolocationProvider interface {
	// LastKnownPosition returns the most recent known position, or nil
	// when none is available.
	LastKnownPosition(ctx context.Context) (*Position, error)
}

// AllocationRecord represents a saved schedule allocation snapshot.
type AllocationRecord struct {
	ID             string
	UserID         string
	TotalHours     float64
	UrgentCount    int
	ImportantCount int

	UrgentBlock      float64
	ImportantBlock   float64
	BreakBlock       float64
	FlexBlock        float64
	PerUrgentTask    float64
	PerImportantTask float64

	SavedAt time.Time
}

// ScheduleRepository defines the secondary port for allocation history.
// Records are append-only and never influence future optimizer runs.
type ScheduleRepository interface {
	// Append persists an allocation snapshot and returns its id.
	Append(ctx context.Context, rec AllocationRecord) (string, error)

	// ListByUser retrieves a user's saved allocations, newest first.
	ListByUser(ctx context.Context, userID string) ([]AllocationRecord, error)
}
