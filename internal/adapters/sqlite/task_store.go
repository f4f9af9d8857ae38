// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/example/twodo/internal/core/fault"
	"github.com/example/twodo/internal/ports/secondary"
)

// TaskStore implements secondary.RemoteTaskStore with SQLite. Every
// mutation fans the full, re-queried result set out to open subscriptions,
// so subscribers always receive complete snapshots, never diffs.
type TaskStore struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]*taskSubscription
	nextSub int
}

// NewTaskStore creates a new SQLite task store.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{
		db:   db,
		subs: make(map[int]*taskSubscription),
	}
}

const taskSelectCols = "id, user_id, name, due_at, latitude, longitude, completed, created_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		rec       secondary.TaskRecord
		latitude  sql.NullFloat64
		longitude sql.NullFloat64
	)

	err := scanner.Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.DueAt,
		&latitude, &longitude, &rec.Completed, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if latitude.Valid {
		rec.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		rec.Longitude = &longitude.Float64
	}

	return &rec, nil
}

// nextID reserves the next task id. Counters only grow, so a deleted id is
// never handed out again.
func (s *TaskStore) nextID(ctx context.Context) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE counters SET value = value + 1 WHERE name = 'tasks'"); err != nil {
		return "", err
	}

	var n int64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = 'tasks'").Scan(&n); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return fmt.Sprintf("TASK-%06d", n), nil
}

// Insert persists a new task and returns the store-assigned id.
func (s *TaskStore) Insert(ctx context.Context, rec secondary.TaskRecord) (string, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to assign task id: %w", err)
	}

	var latitude, longitude sql.NullFloat64
	if rec.Latitude != nil {
		latitude = sql.NullFloat64{Float64: *rec.Latitude, Valid: true}
	}
	if rec.Longitude != nil {
		longitude = sql.NullFloat64{Float64: *rec.Longitude, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, name, due_at, latitude, longitude, completed) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, rec.UserID, rec.Name, rec.DueAt, latitude, longitude, rec.Completed,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	s.notify(ctx, rec.UserID)
	return id, nil
}

// Patch applies a partial-field update to a task.
func (s *TaskStore) Patch(ctx context.Context, id string, patch secondary.TaskPatch) error {
	userID, err := s.ownerOf(ctx, id)
	if err != nil {
		return err
	}

	query := "UPDATE tasks SET id = id"
	args := []any{}

	if patch.Name != nil {
		query += ", name = ?"
		args = append(args, *patch.Name)
	}
	if patch.DueAt != nil {
		query += ", due_at = ?"
		args = append(args, *patch.DueAt)
	}
	if patch.Completed != nil {
		query += ", completed = ?"
		args = append(args, *patch.Completed)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.notify(ctx, userID)
	return nil
}

// Delete removes a task.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	userID, err := s.ownerOf(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.notify(ctx, userID)
	return nil
}

// Get retrieves a single task by id.
func (s *TaskStore) Get(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskSelectCols+" FROM tasks WHERE id = ?", id)

	rec, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return rec, nil
}

// List retrieves a user's tasks ordered by due time ascending, ties broken
// by ascending id.
func (s *TaskStore) List(ctx context.Context, userID string) ([]secondary.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE user_id = ? ORDER BY due_at ASC, id ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var recs []secondary.TaskRecord
	for rows.Next() {
		rec, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// ownerOf resolves the owning user of a task, or a not-found fault.
func (s *TaskStore) ownerOf(ctx context.Context, id string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx, "SELECT user_id FROM tasks WHERE id = ?", id).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", fault.NotFound("task %s not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up task: %w", err)
	}
	return userID, nil
}

// Subscribe opens a snapshot subscription filtered by owning user. The
// initial snapshot is delivered immediately.
func (s *TaskStore) Subscribe(ctx context.Context, userID string) (secondary.TaskSubscription, error) {
	initial, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	sub := &taskSubscription{
		store:     s,
		id:        s.nextSub,
		userID:    userID,
		snapshots: make(chan []secondary.TaskRecord, 1),
		errs:      make(chan error, 1),
	}
	s.subs[sub.id] = sub
	sub.deliver(initial)
	return sub, nil
}

// notify re-queries the user's result set and delivers it to every open
// subscription for that user.
func (s *TaskStore) notify(ctx context.Context, userID string) {
	recs, err := s.List(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if sub.userID != userID {
			continue
		}
		if err != nil {
			sub.deliverErr(err)
			continue
		}
		sub.deliver(recs)
	}
}

// taskSubscription implements secondary.TaskSubscription over an in-process
// channel pair. Delivery coalesces: a slow consumer observes the latest
// snapshot and never blocks the writer.
type taskSubscription struct {
	store  *TaskStore
	id     int
	userID string

	snapshots chan []secondary.TaskRecord
	errs      chan error
}

func (t *taskSubscription) Snapshots() <-chan []secondary.TaskRecord { return t.snapshots }
func (t *taskSubscription) Errs() <-chan error                       { return t.errs }

// deliver is only called while the store lock is held, which keeps it
// ordered with Close.
func (t *taskSubscription) deliver(recs []secondary.TaskRecord) {
	for {
		select {
		case t.snapshots <- recs:
			return
		default:
			select {
			case <-t.snapshots:
			default:
			}
		}
	}
}

func (t *taskSubscription) deliverErr(err error) {
	select {
	case t.errs <- err:
	default:
	}
}

// Close ends the subscription; nothing is delivered afterwards.
func (t *taskSubscription) Close() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, open := t.store.subs[t.id]; !open {
		return nil
	}
	delete(t.store.subs, t.id)
	close(t.snapshots)
	close(t.errs)
	return nil
}

// Ensure TaskStore implements the interface
var _ secondary.RemoteTaskStore = (*TaskStore)(nil)
