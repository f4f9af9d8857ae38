// Package schedule contains the pure daily time-budget optimizer.
// Identical inputs always produce identical outputs: no clock, no hidden
// state, no randomness.
package schedule

import (
	"strconv"

	"github.com/example/twodo/internal/core/fault"
	"github.com/example/twodo/internal/models"
)

// Fixed allocation ratios. The four ratios sum to exactly 1.0 of the
// total hours.
const (
	UrgentRatio    = 0.4
	ImportantRatio = 0.3
	BreakRatio     = 0.2
	FlexRatio      = 0.1
)

// Input is a validated optimizer input.
type Input struct {
	TotalHours     float64
	UrgentCount    int
	ImportantCount int
}

// ParseInput validates the raw text representation of the optimizer inputs.
// Any malformed or out-of-range value is a validation fault; no computation
// happens on bad input.
func ParseInput(totalHours, urgentCount, importantCount string) (Input, error) {
	if totalHours == "" || urgentCount == "" || importantCount == "" {
		return Input{}, fault.Validation("please fill in all fields")
	}

	hours, err := strconv.ParseFloat(totalHours, 64)
	if err != nil {
		return Input{}, fault.Validation("invalid number format: %q", totalHours)
	}
	urgent, err := strconv.Atoi(urgentCount)
	if err != nil {
		return Input{}, fault.Validation("invalid number format: %q", urgentCount)
	}
	important, err := strconv.Atoi(importantCount)
	if err != nil {
		return Input{}, fault.Validation("invalid number format: %q", importantCount)
	}

	in := Input{TotalHours: hours, UrgentCount: urgent, ImportantCount: important}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks the numeric ranges: positive hours, non-negative counts.
func (in Input) Validate() error {
	if in.TotalHours <= 0 || in.UrgentCount < 0 || in.ImportantCount < 0 {
		return fault.Validation("please enter valid positive numbers")
	}
	return nil
}

// Optimize allocates a workday across urgent tasks, important tasks, break
// time and flexible time. The caller must validate in first; Optimize itself
// never faults.
func Optimize(in Input) models.Allocation {
	a := models.Allocation{
		TotalHours:     in.TotalHours,
		UrgentCount:    in.UrgentCount,
		ImportantCount: in.ImportantCount,

		UrgentBlock:    UrgentRatio * in.TotalHours,
		ImportantBlock: ImportantRatio * in.TotalHours,
		BreakBlock:     BreakRatio * in.TotalHours,
		FlexBlock:      FlexRatio * in.TotalHours,
	}

	if in.UrgentCount > 0 {
		a.PerUrgentTask = a.UrgentBlock / float64(in.UrgentCount)
	}
	if in.ImportantCount > 0 {
		a.PerImportantTask = a.ImportantBlock / float64(in.ImportantCount)
	}

	return a
}
