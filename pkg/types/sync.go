package types

import "time"

// Per-row sync statuses. A row is dirty (local) from creation or any update
// until a reconciliation pass marks it synced. The only transitions are
// local -> synced (reconciliation) and synced -> local (user edit).
const (
	StatusLocal  = "local"
	StatusSynced = "synced"
)

// SyncInfo records the outcome of the last successful reconciliation for a
// user. Exactly one row per user, overwritten on each successful sync.
type SyncInfo struct {
	// UserID is the account this record belongs to.
	UserID string

	// LastSync is the timestamp of the last successful reconciliation.
	LastSync time.Time

	// Token is the opaque cursor returned by the last reconciliation.
	Token string
}

// PendingItems is the set of dirty rows collected for one reconciliation
// pass, grouped by entity type.
type PendingItems struct {
	Tasks []Task
	Media []Media
	Notes []Note
}

// Counts returns the number of pending items per entity type.
func (p PendingItems) Counts() SyncCounts {
	return SyncCounts{
		Tasks: len(p.Tasks),
		Media: len(p.Media),
		Notes: len(p.Notes),
	}
}

// Total returns the number of pending items across all entity types.
func (p PendingItems) Total() int {
	return len(p.Tasks) + len(p.Media) + len(p.Notes)
}

// SyncCounts reports how many rows of each entity type a reconciliation
// pass marked as synced.
type SyncCounts struct {
	Tasks int `json:"tasks"`
	Media int `json:"media"`
	Notes int `json:"notes"`
}

// SyncResult is the outcome of one SyncWithServer call.
type SyncResult struct {
	// Success reports whether the pass completed.
	Success bool `json:"success"`

	// SyncedItems counts the rows marked synced, per entity type.
	// Zero-valued when Success is false.
	SyncedItems SyncCounts `json:"syncedItems"`

	// Token is the new opaque sync token. Empty when Success is false.
	Token string `json:"syncToken,omitempty"`

	// Timestamp is when the pass finished.
	Timestamp time.Time `json:"timestamp"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`
}
