package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/pkg/types"
)

func TestSettingsUpsert(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	require.NoError(t, s.SetSetting(ctx, userID, "notifications", "on"))

	setting, err := s.Setting(ctx, userID, "notifications")
	require.NoError(t, err)
	assert.NotEmpty(t, setting.ID)
	assert.Equal(t, userID, setting.UserID)
	assert.Equal(t, "notifications", setting.Key)
	assert.Equal(t, "on", setting.Value)
	assert.Equal(t, setting.CreatedAt, setting.UpdatedAt)

	// Writing the same key overwrites in place, keeping the row identity.
	require.NoError(t, s.SetSetting(ctx, userID, "notifications", "off"))

	updated, err := s.Setting(ctx, userID, "notifications")
	require.NoError(t, err)
	assert.Equal(t, setting.ID, updated.ID)
	assert.Equal(t, "off", updated.Value)
	assert.Equal(t, setting.CreatedAt, updated.CreatedAt)
}

func TestSettingNotFound(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	_, err := s.Setting(ctx, userID, "never-written")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSettingsScopedPerUser(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	karthik := loginKarthik(t, s)

	other, err := s.Authenticate(ctx, "USER", "7013178749")
	require.NoError(t, err)

	require.NoError(t, s.SetSetting(ctx, karthik, "lang", "en"))
	require.NoError(t, s.SetSetting(ctx, other.ID, "lang", "fr"))

	setting, err := s.Setting(ctx, karthik, "lang")
	require.NoError(t, err)
	assert.Equal(t, "en", setting.Value)

	setting, err = s.Setting(ctx, other.ID, "lang")
	require.NoError(t, err)
	assert.Equal(t, "fr", setting.Value)
}
