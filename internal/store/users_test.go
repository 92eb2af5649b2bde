package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/pkg/types"
)

func TestAuthenticate(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	t.Run("records login time", func(t *testing.T) {
		user, err := s.Authenticate(ctx, "KARTHIK", "7013178749")
		require.NoError(t, err)
		assert.False(t, user.LastLogin.IsZero())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "KARTHIK", "nope")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		// Indistinguishable from a wrong password.
		_, err := s.Authenticate(ctx, "NOBODY", "7013178749")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})
}

func TestUserByID(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	user, err := s.UserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "KARTHIK", user.Username)

	_, err = s.UserByID(ctx, "missing-id")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.UserByID(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestUpdateUserProfile(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	t.Run("partial update", func(t *testing.T) {
		name := "Karthik R"
		theme := "light"
		err := s.UpdateUserProfile(ctx, userID, types.UserProfileUpdate{Name: &name, Theme: &theme})
		require.NoError(t, err)

		user, err := s.UserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Karthik R", user.Name)
		assert.Equal(t, "light", user.Theme)
		// Untouched fields stay put.
		assert.Equal(t, "karthik@example.com", user.Email)
	})

	t.Run("empty update", func(t *testing.T) {
		err := s.UpdateUserProfile(ctx, userID, types.UserProfileUpdate{})
		assert.ErrorIs(t, err, types.ErrEmptyUpdate)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "x"
		err := s.UpdateUserProfile(ctx, "missing-id", types.UserProfileUpdate{Name: &name})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		password := "new-secret"
		err := s.UpdateUserProfile(ctx, userID, types.UserProfileUpdate{Password: &password})
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, "KARTHIK", "7013178749")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)

		user, err := s.Authenticate(ctx, "KARTHIK", "new-secret")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
}
