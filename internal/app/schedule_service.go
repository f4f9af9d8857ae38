package app

import (
	"context"
	"time"

	"github.com/example/twodo/internal/core/fault"
	schedcore "github.com/example/twodo/internal/core/schedule"
	"github.com/example/twodo/internal/models"
	"github.com/example/twodo/internal/ports/primary"
	"github.com/example/twodo/internal/ports/secondary"
)

// ScheduleServiceImpl implements the ScheduleService interface.
type ScheduleServiceImpl struct {
	repo    secondary.ScheduleRepository
	account secondary.AccountService
	clock   func() time.Time
}

// NewScheduleService creates a new ScheduleService with injected dependencies.
func NewScheduleService(repo secondary.ScheduleRepository, account secondary.AccountService) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:    repo,
		account: account,
		clock:   time.Now,
	}
}

// Plan validates the raw inputs and computes a time-budget allocation.
func (s *ScheduleServiceImpl) Plan(ctx context.Context, req primary.PlanRequest) (*models.Allocation, error) {
	in, err := schedcore.ParseInput(req.TotalHours, req.UrgentCount, req.ImportantCount)
	if err != nil {
		return nil, err
	}

	a := schedcore.Optimize(in)
	return &a, nil
}

// SavePlan appends an allocation as a historical snapshot. The record is
// never re-read into the optimizer; each run stays independent.
func (s *ScheduleServiceImpl) SavePlan(ctx context.Context, a models.Allocation) (string, error) {
	userID := s.account.CurrentUserID(ctx)
	if userID == "" {
		return "", fault.NotAuthenticated("please log in to save your schedule")
	}

	id, err := s.repo.Append(ctx, secondary.AllocationRecord{
		UserID:           userID,
		TotalHours:       a.TotalHours,
		UrgentCount:      a.UrgentCount,
		ImportantCount:   a.ImportantCount,
		UrgentBlock:      a.UrgentBlock,
		ImportantBlock:   a.ImportantBlock,
		BreakBlock:       a.BreakBlock,
		FlexBlock:        a.FlexBlock,
		PerUrgentTask:    a.PerUrgentTask,
		PerImportantTask: a.PerImportantTask,
		SavedAt:          s.clock(),
	})
	if err != nil {
		return "", fault.StoreUnavailable("failed to save schedule", err)
	}
	return id, nil
}

// History lists the active user's saved allocations, newest first.
func (s *ScheduleServiceImpl) History(ctx context.Context) ([]models.SavedAllocation, error) {
	userID := s.account.CurrentUserID(ctx)
	if userID == "" {
		return nil, fault.NotAuthenticated("please log in to view saved schedules")
	}

	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fault.StoreUnavailable("failed to list saved schedules", err)
	}

	saved := make([]models.SavedAllocation, len(recs))
	for i, r := range recs {
		saved[i] = models.SavedAllocation{
			ID:      r.ID,
			UserID:  r.UserID,
			SavedAt: r.SavedAt,
			Allocation: models.Allocation{
				TotalHours:       r.TotalHours,
				UrgentCount:      r.UrgentCount,
				ImportantCount:   r.ImportantCount,
				UrgentBlock:      r.UrgentBlock,
				ImportantBlock:   r.ImportantBlock,
				BreakBlock:       r.BreakBlock,
				FlexBlock:        r.FlexBlock,
				PerUrgentTask:    r.PerUrgentTask,
				PerImportantTask: r.PerImportantTask,
			},
		}
	}
	return saved, nil
}

// Ensure ScheduleServiceImpl implements the interface
var _ primary.ScheduleService = (*ScheduleServiceImpl)(nil)
