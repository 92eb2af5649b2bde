package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/internal/blob"
	"github.com/origin-mobile/satchel/internal/store"
	"github.com/origin-mobile/satchel/pkg/types"
)

// setupManager attaches a store over an in-memory blob store and returns a
// Manager with it, plus the ID of the seeded KARTHIK account.
func setupManager(t *testing.T) (*Manager, *store.Store, string) {
	t.Helper()
	ctx := context.Background()
	blobs := blob.NewMemStore()

	st := store.New(blobs, nil)
	require.NoError(t, st.Attach(ctx, types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { st.Close() })

	user, err := st.Authenticate(ctx, "KARTHIK", "7013178749")
	require.NoError(t, err)

	return NewManager(st, blobs, nil), st, user.ID
}

func TestEnabledDefaultsToFalse(t *testing.T) {
	m, _, userID := setupManager(t)
	ctx := context.Background()

	enabled, err := m.Enabled(ctx, userID)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSetEnabled(t *testing.T) {
	m, _, userID := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetEnabled(ctx, userID, true))
	enabled, err := m.Enabled(ctx, userID)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, m.SetEnabled(ctx, userID, false))
	enabled, err = m.Enabled(ctx, userID)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestEnablementIsPerUser(t *testing.T) {
	m, st, karthik := setupManager(t)
	ctx := context.Background()

	other, err := st.Authenticate(ctx, "USER", "7013178749")
	require.NoError(t, err)

	require.NoError(t, m.SetEnabled(ctx, karthik, true))

	enabled, err := m.Enabled(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestLastAttemptZeroWhenNeverSynced(t *testing.T) {
	m, _, userID := setupManager(t)

	last, err := m.LastAttempt(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestDue(t *testing.T) {
	m, _, userID := setupManager(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	t.Run("disabled is never due", func(t *testing.T) {
		due, err := m.Due(ctx, userID)
		require.NoError(t, err)
		assert.False(t, due)
	})

	require.NoError(t, m.SetEnabled(ctx, userID, true))

	t.Run("enabled with no prior attempt is due", func(t *testing.T) {
		due, err := m.Due(ctx, userID)
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("inside the interval is not due", func(t *testing.T) {
		m.recordAttempt(ctx, userID)
		m.now = func() time.Time { return base.Add(4 * time.Minute) }

		due, err := m.Due(ctx, userID)
		require.NoError(t, err)
		assert.False(t, due)
	})

	t.Run("past the interval is due again", func(t *testing.T) {
		m.now = func() time.Time { return base.Add(5 * time.Minute) }

		due, err := m.Due(ctx, userID)
		require.NoError(t, err)
		assert.True(t, due)
	})
}

func TestSyncWithServer(t *testing.T) {
	m, st, userID := setupManager(t)
	ctx := context.Background()

	_, err := st.CreateTask(ctx, userID, types.Task{Title: "a", Date: "2026-09-01"})
	require.NoError(t, err)
	_, err = st.CreateTask(ctx, userID, types.Task{Title: "b", Date: "2026-09-01"})
	require.NoError(t, err)
	_, err = st.CreateNote(ctx, userID, types.Note{Title: "c"})
	require.NoError(t, err)

	result, err := m.SyncWithServer(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.Equal(t, types.SyncCounts{Tasks: 2, Media: 0, Notes: 1}, result.SyncedItems)
	assert.NotEmpty(t, result.Token)
	assert.Empty(t, result.Error)

	// The pass recorded the attempt and the bookkeeping row.
	last, err := m.LastAttempt(ctx, userID)
	require.NoError(t, err)
	assert.False(t, last.IsZero())

	info, err := st.SyncInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, result.Token, info.Token)

	// A second pass finds nothing dirty.
	result, err = m.SyncWithServer(ctx, userID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.SyncedItems.Tasks+result.SyncedItems.Media+result.SyncedItems.Notes)
}

func TestSyncWithServerRequiresUser(t *testing.T) {
	m, _, _ := setupManager(t)

	result, err := m.SyncWithServer(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrUserIDRequired)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestSyncRecordsAttemptOnFailure(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemStore()

	// A detached store makes every pass fail before the exchange.
	st := store.New(blobs, nil)
	m := NewManager(st, blobs, nil)

	result, err := m.SyncWithServer(ctx, "user-1")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)

	last, err := m.LastAttempt(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, last.IsZero(), "attempt must be recorded even when the pass fails")
}
