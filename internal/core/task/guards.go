package task

import "github.com/example/twodo/internal/core/fault"

// Guards are pure functions that evaluate command preconditions without side
// effects. They are checked before any store I/O happens.

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	UserID string // empty when no active identity
	Name   string
}

// MutateTaskContext provides context for update/toggle guards.
type MutateTaskContext struct {
	UserID       string
	TaskID       string
	TaskInMirror bool // whether the id is present in the last known mirror
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - An identity must be active
// - The name must not be empty
func CanCreateTask(ctx CreateTaskContext) error {
	if ctx.UserID == "" {
		return fault.NotAuthenticated("please log in to manage tasks")
	}
	if ctx.Name == "" {
		return fault.Validation("task name must not be empty")
	}
	return nil
}

// CanMutateTask evaluates whether an existing task can be updated, toggled
// or otherwise referenced by id.
// Rules:
// - An identity must be active
// - The id must be present in the last known mirror
func CanMutateTask(ctx MutateTaskContext) error {
	if ctx.UserID == "" {
		return fault.NotAuthenticated("please log in to manage tasks")
	}
	if !ctx.TaskInMirror {
		return fault.NotFound("task %s not found", ctx.TaskID)
	}
	return nil
}
