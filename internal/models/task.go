// Package models contains domain types for twodo entities.
// Persistence lives behind the repository interfaces in ports/secondary.
package models

import "time"

// Task represents a single dated, optionally geolocated to-do item.
// The ID is assigned exactly once by the task store and never changes.
type Task struct {
	ID        string
	UserID    string
	Name      string
	DueAt     time.Time // timezone-naive, interpreted in the user's local time
	Latitude  *float64  // nil until geolocation resolves
	Longitude *float64
	Completed bool
	CreatedAt time.Time
}

// Task display state constants. Deleted tasks vanish from the mirror,
// so no constant exists for them.
const (
	TaskStatePending   = "pending"
	TaskStateOverdue   = "overdue"
	TaskStateCompleted = "completed"
)
