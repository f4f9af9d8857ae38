package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/twodo/internal/ports/secondary"
)

// ScheduleRepository implements secondary.ScheduleRepository with SQLite.
// The table is append-only: allocation snapshots are written once and only
// ever read back for display.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new SQLite schedule repository.
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Append persists an allocation snapshot and returns its id.
func (r *ScheduleRepository) Append(ctx context.Context, rec secondary.AllocationRecord) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to save schedule: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE counters SET value = value + 1 WHERE name = 'daily_schedules'"); err != nil {
		return "", fmt.Errorf("failed to assign schedule id: %w", err)
	}
	var n int64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = 'daily_schedules'").Scan(&n); err != nil {
		return "", fmt.Errorf("failed to assign schedule id: %w", err)
	}
	id := fmt.Sprintf("SCHED-%06d", n)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO daily_schedules (
			id, user_id, total_hours, urgent_count, important_count,
			urgent_block, important_block, break_block, flex_block,
			per_urgent_task, per_important_task, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.UserID, rec.TotalHours, rec.UrgentCount, rec.ImportantCount,
		rec.UrgentBlock, rec.ImportantBlock, rec.BreakBlock, rec.FlexBlock,
		rec.PerUrgentTask, rec.PerImportantTask, rec.SavedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to save schedule: %w", err)
	}
	return id, nil
}

// ListByUser retrieves a user's saved allocations, newest first.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID string) ([]secondary.AllocationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total_hours, urgent_count, important_count,
			urgent_block, important_block, break_block, flex_block,
			per_urgent_task, per_important_task, saved_at
		FROM daily_schedules WHERE user_id = ? ORDER BY saved_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var recs []secondary.AllocationRecord
	for rows.Next() {
		var rec secondary.AllocationRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.TotalHours, &rec.UrgentCount, &rec.ImportantCount,
			&rec.UrgentBlock, &rec.ImportantBlock, &rec.BreakBlock, &rec.FlexBlock,
			&rec.PerUrgentTask, &rec.PerImportantTask, &rec.SavedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Ensure ScheduleRepository implements the interface
var _ secondary.ScheduleRepository = (*ScheduleRepository)(nil)
