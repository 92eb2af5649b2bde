package types

import "time"

// Setting is a per-user key/value preference. (user_id, key) is unique;
// writes have upsert semantics.
type Setting struct {
	// ID is a UUID, generated on first insert.
	ID string

	// UserID is the owning user.
	UserID string

	// Key is the preference name, unique per user.
	Key string

	// Value is the preference value.
	Value string

	// CreatedAt and UpdatedAt are maintained by the store.
	CreatedAt time.Time
	UpdatedAt time.Time
}
