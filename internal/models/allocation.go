package models

import "time"

// Allocation is the result of one schedule optimization run. It is a pure
// value: computed once, never mutated, never fed back into a later run.
type Allocation struct {
	TotalHours     float64
	UrgentCount    int
	ImportantCount int

	UrgentBlock      float64
	ImportantBlock   float64
	BreakBlock       float64
	FlexBlock        float64
	PerUrgentTask    float64
	PerImportantTask float64
}

// SavedAllocation is an allocation persisted as a historical snapshot.
type SavedAllocation struct {
	ID      string
	UserID  string
	SavedAt time.Time
	Allocation
}
