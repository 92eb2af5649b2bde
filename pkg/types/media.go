package types

import "time"

// Media types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media sources.
const (
	SourceCamera   = "camera"
	SourceImported = "imported"
)

// Media represents a gallery item belonging to exactly one user. The URL is
// an opaque reference to the binary content; the store never dereferences it.
type Media struct {
	// ID is a UUID, generated on creation when absent.
	ID string

	// UserID is the owning user.
	UserID string

	// Name is the display name (required).
	Name string

	// URL is the opaque blob reference (required).
	URL string

	// Type is image or video.
	Type string

	// Size is the content size in bytes; 0 when unknown.
	Size int64

	// Source records how the item entered the gallery; defaults to camera.
	Source string

	// CreatedAt is maintained by the store.
	CreatedAt time.Time

	// SyncID is the stable cross-copy identifier. Unique.
	SyncID string

	// SyncStatus is StatusLocal until the row is reconciled.
	SyncStatus string
}
