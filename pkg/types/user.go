package types

import "time"

// User represents an account on this device. The password hash is never
// carried on this struct; read operations return users with credentials
// stripped.
type User struct {
	// ID is a UUID, generated on creation.
	ID string

	// Username is the unique login name.
	Username string

	// Name is the display name.
	Name string

	// Email is the contact address.
	Email string

	// Avatar is an opaque reference to the profile picture.
	Avatar string

	// Theme is the UI theme preference.
	Theme string

	// SyncID is the stable identifier used to match this account across
	// copies of the data during reconciliation. Unique.
	SyncID string

	// CreatedAt is the timestamp of account creation.
	CreatedAt time.Time

	// LastLogin is the timestamp of the last successful authentication;
	// zero if the user has never logged in.
	LastLogin time.Time
}

// UserProfileUpdate is a typed partial update for a user profile. Nil fields
// are left unchanged. ID and username are not updatable; a non-nil Password
// is re-hashed before storage.
type UserProfileUpdate struct {
	Name     *string
	Email    *string
	Avatar   *string
	Theme    *string
	Password *string
}

// IsEmpty reports whether the update carries no fields.
func (u UserProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Avatar == nil &&
		u.Theme == nil && u.Password == nil
}
