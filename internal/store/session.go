package store

import (
	"context"
	"fmt"

	"github.com/origin-mobile/satchel/pkg/types"
)

// Session continuity: the last authenticated user ID lives in the blob store
// so the application can restore the session across restarts. These
// operations go straight to the blob store and do not touch the engine.

// CurrentUserID returns the persisted session user ID.
// Returns types.ErrNotFound when no session is stored.
func (s *Store) CurrentUserID(ctx context.Context) (string, error) {
	id, err := s.blobs.Get(ctx, currentUserKey)
	if isNotFound(err) {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return id, nil
}

// SetCurrentUser persists the session user ID.
func (s *Store) SetCurrentUser(ctx context.Context, userID string) error {
	if userID == "" {
		return types.ErrInvalidID
	}
	if err := s.blobs.Set(ctx, currentUserKey, userID); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// ClearCurrentUser removes the persisted session. Clearing an absent session
// is a no-op.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if err := s.blobs.Remove(ctx, currentUserKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
