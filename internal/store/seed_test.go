package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/pkg/types"
)

func TestSeedIsGuarded(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	// A repeat call is a no-op thanks to the row-count guard; with the
	// unique username constraint a second insert would fail loudly.
	s.mu.Lock()
	err := s.seedDefaultUsers(ctx)
	s.mu.Unlock()
	require.NoError(t, err)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestUsernameIsUnique(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password, created_at) VALUES (?, ?, ?, ?)",
		newID(), "KARTHIK", "irrelevant", s.timestamp())
	require.Error(t, err)
	assert.ErrorContains(t, err, "UNIQUE constraint failed")
}

func TestRestoreDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	s, blobs := setupTestStore(t)

	userID := loginKarthik(t, s)
	name := "Renamed"
	require.NoError(t, s.UpdateUserProfile(ctx, userID, types.UserProfileUpdate{Name: &name}))
	require.NoError(t, s.Close())

	restored := New(blobs, nil)
	require.NoError(t, restored.Attach(ctx, types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { restored.Close() })

	user, err := restored.UserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name, "restore must keep edits, not reseed defaults")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("secret")
	require.NoError(t, err)

	assert.True(t, checkPassword(hash, "secret"))
	assert.False(t, checkPassword(hash, "Secret"))
	assert.False(t, checkPassword("not-a-hash", "secret"))

	// Salted: hashing the same input twice yields different hashes.
	again, err := hashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}
