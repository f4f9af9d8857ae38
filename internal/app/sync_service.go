// Package app implements the primary ports. Services take their
// collaborators by constructor injection and hold no package-level state.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/twodo/internal/core/fault"
	taskcore "github.com/example/twodo/internal/core/task"
	"github.com/example/twodo/internal/models"
	"github.com/example/twodo/internal/ports/primary"
	"github.com/example/twodo/internal/ports/secondary"
)

// defaultTick is the cadence of the local re-derivation timer. Each tick
// recomputes countdown state against the wall clock without touching the
// store; snapshots and ticks are fully decoupled.
const defaultTick = 60 * time.Second

const (
	syncIdle = iota
	syncRunning
	syncClosed
)

// mirror is one immutable generation of the local task set. Snapshot
// arrival and derivation ticks both publish a whole new generation via
// pointer swap, so readers never observe partial state.
type mirror struct {
	tasks []models.Task
	views []primary.TaskView
	asOf  time.Time
}

// SyncServiceImpl implements the TaskSyncService interface.
type SyncServiceImpl struct {
	store   secondary.RemoteTaskStore
	account secondary.AccountService
	geo     secondary.GeolocationProvider

	clock func() time.Time
	tick  time.Duration

	current atomic.Pointer[mirror]

	mu     sync.Mutex
	state  int
	stop   chan struct{}
	done   chan struct{}
	sub    secondary.TaskSubscription
	events chan primary.SyncEvent
}

// NewSyncService creates a new TaskSyncService with injected dependencies.
func NewSyncService(
	store secondary.RemoteTaskStore,
	account secondary.AccountService,
	geo secondary.GeolocationProvider,
) *SyncServiceImpl {
	s := &SyncServiceImpl{
		store:   store,
		account: account,
		geo:     geo,
		clock:   time.Now,
		tick:    defaultTick,
		events:  make(chan primary.SyncEvent, 16),
	}
	s.current.Store(&mirror{})
	return s
}

// Start opens the standing store subscription for the active user and the
// periodic derivation timer.
func (s *SyncServiceImpl) Start(ctx context.Context) error {
	userID := s.account.CurrentUserID(ctx)
	if userID == "" {
		return fault.NotAuthenticated("please log in to sync tasks")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case syncRunning:
		return fault.Validation("sync already started")
	case syncClosed:
		return fault.Validation("sync already closed")
	}

	sub, err := s.store.Subscribe(ctx, userID)
	if err != nil {
		return fault.StoreUnavailable("failed to subscribe to task store", err)
	}

	s.sub = sub
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.state = syncRunning

	go s.run(sub)
	return nil
}

// run is the single writer of the mirror: it applies store snapshots and
// periodic re-derivations until Close.
func (s *SyncServiceImpl) run(sub secondary.TaskSubscription) {
	defer close(s.done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	snapshots := sub.Snapshots()
	errs := sub.Errs()

	for {
		select {
		case <-s.stop:
			return

		case recs, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			n := s.applySnapshot(recs)
			s.emit(primary.SyncEvent{Type: primary.EventSnapshotApplied, TaskCount: n, At: s.clock()})

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			// Surfaced but never fatal; the store's own retry policy
			// recovers the subscription and a later snapshot resumes
			// normal operation.
			s.emit(primary.SyncEvent{
				Type: primary.EventSubscriptionError,
				Err:  fault.StoreUnavailable("task subscription error", err),
				At:   s.clock(),
			})

		case <-ticker.C:
			n := s.rederive(s.clock())
			s.emit(primary.SyncEvent{Type: primary.EventDerivationTick, TaskCount: n, At: s.clock()})
		}
	}
}

// applySnapshot atomically replaces the mirror with a normalized copy of
// the received result set.
func (s *SyncServiceImpl) applySnapshot(recs []secondary.TaskRecord) int {
	tasks := make([]models.Task, len(recs))
	for i, r := range recs {
		tasks[i] = recordToTask(r)
	}
	tasks = taskcore.Normalize(tasks)

	now := s.clock()
	s.current.Store(&mirror{
		tasks: tasks,
		views: deriveViews(tasks, now),
		asOf:  now,
	})
	return len(tasks)
}

// rederive recomputes display state over the cached tasks without a store
// round-trip.
func (s *SyncServiceImpl) rederive(now time.Time) int {
	cur := s.current.Load()
	s.current.Store(&mirror{
		tasks: cur.tasks,
		views: deriveViews(cur.tasks, now),
		asOf:  now,
	})
	return len(cur.tasks)
}

// emit delivers an event without ever blocking the sync loop. When the
// consumer lags the oldest buffered event is dropped.
func (s *SyncServiceImpl) emit(ev primary.SyncEvent) {
	for {
		select {
		case s.events <- ev:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}

// Close tears down the timer and the subscription. Idempotent.
func (s *SyncServiceImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case syncClosed:
		return nil
	case syncRunning:
		close(s.stop)
		_ = s.sub.Close()
		<-s.done
		s.sub = nil
	}

	s.state = syncClosed
	close(s.events)
	return nil
}

// Snapshot returns a read-only copy of the current derived views.
func (s *SyncServiceImpl) Snapshot() []primary.TaskView {
	cur := s.current.Load()
	views := make([]primary.TaskView, len(cur.views))
	copy(views, cur.views)
	return views
}

// Events returns the stream of sync events.
func (s *SyncServiceImpl) Events() <-chan primary.SyncEvent {
	return s.events
}

// CreateTask creates a new task. When the caller supplies no coordinates
// the geolocation provider is consulted once, best effort; a provider miss
// leaves them null rather than failing the create.
func (s *SyncServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.CreateTaskResponse, error) {
	userID := s.account.CurrentUserID(ctx)
	if err := taskcore.CanCreateTask(taskcore.CreateTaskContext{UserID: userID, Name: req.Name}); err != nil {
		return nil, err
	}

	lat, lon := req.Latitude, req.Longitude
	if lat == nil && lon == nil && s.geo != nil {
		if pos, err := s.geo.LastKnownPosition(ctx); err == nil && pos != nil {
			lat = &pos.Latitude
			lon = &pos.Longitude
		}
	}

	id, err := s.store.Insert(ctx, secondary.TaskRecord{
		UserID:    userID,
		Name:      req.Name,
		DueAt:     req.DueAt,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return nil, fault.StoreUnavailable("failed to create task", err)
	}

	// The assigned id shows up in the mirror with the next snapshot.
	return &primary.CreateTaskResponse{TaskID: id}, nil
}

// UpdateTask patches exactly the name and due time of a task.
func (s *SyncServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) error {
	userID := s.account.CurrentUserID(ctx)
	_, inMirror := s.findTask(req.TaskID)
	if err := taskcore.CanMutateTask(taskcore.MutateTaskContext{
		UserID:       userID,
		TaskID:       req.TaskID,
		TaskInMirror: inMirror,
	}); err != nil {
		return err
	}
	if req.Name == "" {
		return fault.Validation("task name must not be empty")
	}

	name := req.Name
	dueAt := req.DueAt
	if err := s.store.Patch(ctx, req.TaskID, secondary.TaskPatch{Name: &name, DueAt: &dueAt}); err != nil {
		if fault.IsNotFound(err) {
			return err
		}
		return fault.StoreUnavailable("failed to update task", err)
	}
	return nil
}

// ToggleCompleted negates the completed flag of the last known mirror value
// for the task. This is read-modify-write against client-cached state, not
// an atomic server-side toggle: concurrent toggles from two clients race
// and the last writer wins.
func (s *SyncServiceImpl) ToggleCompleted(ctx context.Context, taskID string) error {
	userID := s.account.CurrentUserID(ctx)
	known, inMirror := s.findTask(taskID)
	if err := taskcore.CanMutateTask(taskcore.MutateTaskContext{
		UserID:       userID,
		TaskID:       taskID,
		TaskInMirror: inMirror,
	}); err != nil {
		return err
	}

	completed := !known.Completed
	if err := s.store.Patch(ctx, taskID, secondary.TaskPatch{Completed: &completed}); err != nil {
		if fault.IsNotFound(err) {
			return err
		}
		return fault.StoreUnavailable("failed to update task", err)
	}
	return nil
}

// DeleteTask deletes a task. A store not-found answer is success-equivalent
// so a second delete of the same id raises no new error.
func (s *SyncServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	if s.account.CurrentUserID(ctx) == "" {
		return fault.NotAuthenticated("please log in to manage tasks")
	}

	if err := s.store.Delete(ctx, taskID); err != nil {
		if fault.IsNotFound(err) {
			return nil
		}
		return fault.StoreUnavailable("failed to delete task", err)
	}
	return nil
}

// findTask looks a task up in the last applied mirror.
func (s *SyncServiceImpl) findTask(id string) (models.Task, bool) {
	for _, t := range s.current.Load().tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func recordToTask(r secondary.TaskRecord) models.Task {
	return models.Task{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		DueAt:     r.DueAt,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
	}
}

func deriveViews(tasks []models.Task, now time.Time) []primary.TaskView {
	views := make([]primary.TaskView, len(tasks))
	for i, v := range taskcore.DeriveAll(tasks, now) {
		views[i] = primary.TaskView{
			ID:          v.Task.ID,
			Name:        v.Task.Name,
			DueAt:       v.Task.DueAt,
			Latitude:    v.Task.Latitude,
			Longitude:   v.Task.Longitude,
			Completed:   v.Task.Completed,
			State:       v.State,
			HoursLeft:   v.HoursLeft,
			MinutesLeft: v.MinutesLeft,
			Remaining:   v.Remaining(),
		}
	}
	return views
}

// Ensure SyncServiceImpl implements the interface
var _ primary.TaskSyncService = (*SyncServiceImpl)(nil)
