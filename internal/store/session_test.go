package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/pkg/types"
)

func TestSessionRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CurrentUserID(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, s.SetCurrentUser(ctx, "user-123"))

	id, err := s.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id)

	require.NoError(t, s.ClearCurrentUser(ctx))
	_, err = s.CurrentUserID(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Clearing an absent session is a no-op.
	require.NoError(t, s.ClearCurrentUser(ctx))
}

func TestSetCurrentUserRejectsEmptyID(t *testing.T) {
	s, _ := setupTestStore(t)
	assert.ErrorIs(t, s.SetCurrentUser(context.Background(), ""), types.ErrInvalidID)
}
