package primary

import (
	"context"

	"github.com/example/twodo/internal/models"
)

// ScheduleService defines the primary port for daily schedule optimization.
type ScheduleService interface {
	// Plan validates the raw inputs and computes a time-budget
	// allocation. No identity is required to plan.
	Plan(ctx context.Context, req PlanRequest) (*models.Allocation, error)

	// SavePlan appends an allocation as a historical snapshot for the
	// active user.
	SavePlan(ctx context.Context, a models.Allocation) (string, error)

	// History lists the active user's saved allocations, newest first.
	History(ctx context.Context) ([]models.SavedAllocation, error)
}

// PlanRequest carries the optimizer inputs in their raw text
// representation, exactly as entered.
type PlanRequest struct {
	TotalHours     string
	UrgentCount    string
	ImportantCount string
}
