package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("urgent"))
	assert.False(t, ValidPriority(""))
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrDataDirEmpty)
	assert.NoError(t, Config{DataDir: "/tmp/data"}.Validate())
}

func TestUpdateIsEmpty(t *testing.T) {
	title := "x"

	assert.True(t, TaskUpdate{}.IsEmpty())
	assert.False(t, TaskUpdate{Title: &title}.IsEmpty())

	assert.True(t, NoteUpdate{}.IsEmpty())
	assert.False(t, NoteUpdate{Content: &title}.IsEmpty())

	assert.True(t, UserProfileUpdate{}.IsEmpty())
	assert.False(t, UserProfileUpdate{Theme: &title}.IsEmpty())
}

func TestPendingItemsCounts(t *testing.T) {
	p := PendingItems{
		Tasks: []Task{{}, {}},
		Notes: []Note{{}},
	}
	assert.Equal(t, SyncCounts{Tasks: 2, Media: 0, Notes: 1}, p.Counts())
	assert.Equal(t, 3, p.Total())
}
