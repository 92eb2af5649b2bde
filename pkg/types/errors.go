package types

import "errors"

// Store lifecycle errors.
var (
	ErrNotAttached  = errors.New("store is not attached")
	ErrCorruptImage = errors.New("persisted database image is corrupt")
)

// Row-level operation errors. Callers match these with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidID          = errors.New("invalid ID")
	ErrInvalidData        = errors.New("invalid entity data")
	ErrEmptyUpdate        = errors.New("update contains no fields")
)

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Sync bookkeeping errors.
var (
	ErrUserIDRequired = errors.New("user ID is required")
)
