package types

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// validPriorities is the set of recognized priority values.
var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// ValidPriority reports whether p is a recognized task priority.
func ValidPriority(p string) bool {
	return validPriorities[p]
}

// Task represents a day-planner entry belonging to exactly one user.
type Task struct {
	// ID is a UUID, generated on creation when absent.
	ID string

	// UserID is the owning user.
	UserID string

	// Title is the task description (required).
	Title string

	// Time is the optional scheduled time of day ("HH:MM"); empty when unset.
	Time string

	// Priority is one of the Priority constants; defaults to medium.
	Priority string

	// Date is the scheduled day in ISO date form ("YYYY-MM-DD").
	Date string

	// Completed marks the task as done.
	Completed bool

	// CreatedAt and UpdatedAt are maintained by the store.
	CreatedAt time.Time
	UpdatedAt time.Time

	// SyncID is the stable cross-copy identifier. Unique.
	SyncID string

	// SyncStatus is StatusLocal until the row is reconciled.
	SyncStatus string
}

// TaskUpdate is a typed partial update for a task. Nil fields are left
// unchanged. Any applied update resets the row's sync_status to local and
// refreshes updated_at, a completion toggle included.
type TaskUpdate struct {
	Title     *string
	Time      *string
	Priority  *string
	Date      *string
	Completed *bool
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Time == nil && u.Priority == nil &&
		u.Date == nil && u.Completed == nil
}
