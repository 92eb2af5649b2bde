package types

import "time"

// Note represents a free-form note belonging to exactly one user.
type Note struct {
	// ID is a UUID, generated on creation when absent.
	ID string

	// UserID is the owning user.
	UserID string

	// Title is the note title (required).
	Title string

	// Content is the note body; may be empty.
	Content string

	// CreatedAt and UpdatedAt are maintained by the store.
	CreatedAt time.Time
	UpdatedAt time.Time

	// SyncID is the stable cross-copy identifier. Unique.
	SyncID string

	// SyncStatus is StatusLocal until the row is reconciled.
	SyncStatus string
}

// NoteUpdate is a typed partial update for a note. Nil fields are left
// unchanged. Any applied update resets sync_status to local and refreshes
// updated_at.
type NoteUpdate struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether the update carries no fields.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
