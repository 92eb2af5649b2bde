// Package blob provides the persistent key-value store backing the Satchel
// data layer. Values survive application restarts; the data layer writes the
// full database image here after every mutation.
package blob

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
// Callers match it with errors.Is.
var ErrKeyNotFound = errors.New("blob: key not found")

// Store is an asynchronous key-value store with get/set/remove semantics.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value. The write
	// is durable before Set returns.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key. Removing an absent key
	// is not an error.
	Remove(ctx context.Context, key string) error
}
