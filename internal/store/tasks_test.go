package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origin-mobile/satchel/pkg/types"
)

func TestCreateTaskDefaults(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	task, err := s.CreateTask(ctx, userID, types.Task{Title: "Walk", Date: "2026-09-01"})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.NotEmpty(t, task.SyncID)
	assert.NotEqual(t, task.ID, task.SyncID)
	assert.Equal(t, types.PriorityMedium, task.Priority)
	assert.Equal(t, types.StatusLocal, task.SyncStatus)
	assert.False(t, task.Completed)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTaskValidation(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	tests := []struct {
		name string
		task types.Task
		want error
	}{
		{"missing title", types.Task{Date: "2026-09-01"}, types.ErrInvalidData},
		{"missing date", types.Task{Title: "x"}, types.ErrInvalidData},
		{"bad priority", types.Task{Title: "x", Date: "2026-09-01", Priority: "urgent"}, types.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTask(ctx, userID, tt.task)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := s.CreateTask(ctx, "", types.Task{Title: "x", Date: "2026-09-01"})
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestCreateTaskRejectsDuplicateSyncID(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	_, err := s.CreateTask(ctx, userID, types.Task{Title: "first", Date: "2026-09-01", SyncID: "srv-42"})
	require.NoError(t, err)

	// sync_id carries a UNIQUE constraint so a server-assigned identity can
	// never map to two local rows.
	_, err = s.CreateTask(ctx, userID, types.Task{Title: "second", Date: "2026-09-01", SyncID: "srv-42"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "UNIQUE constraint failed")
}

func TestTasksOrderedByTime(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	const day = "2026-09-01"
	for _, tm := range []string{"14:30", "", "09:00"} {
		_, err := s.CreateTask(ctx, userID, types.Task{Title: "t" + tm, Date: day, Time: tm})
		require.NoError(t, err)
	}

	tasks, err := s.Tasks(ctx, userID, day)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Tasks without a time sort first, the rest ascending.
	times := []string{tasks[0].Time, tasks[1].Time, tasks[2].Time}
	assert.Equal(t, []string{"", "09:00", "14:30"}, times)
}

func TestTasksFilteredByDate(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	_, err := s.CreateTask(ctx, userID, types.Task{Title: "monday", Date: "2026-09-07"})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, userID, types.Task{Title: "tuesday", Date: "2026-09-08"})
	require.NoError(t, err)

	tasks, err := s.Tasks(ctx, userID, "2026-09-07")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "monday", tasks[0].Title)

	// No date filter returns everything.
	tasks, err = s.Tasks(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	// Unmatched date yields an empty, non-nil slice.
	tasks, err = s.Tasks(ctx, userID, "2030-01-01")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateTaskResetsSyncStatus(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	task, err := s.CreateTask(ctx, userID, types.Task{Title: "toggle me", Date: "2026-09-01"})
	require.NoError(t, err)

	// Reconcile so the row is clean.
	pending, err := s.ItemsToSync(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, s.MarkSynced(ctx, userID, pending, "token-1"))

	pending, err = s.ItemsToSync(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, pending.Tasks)

	// Toggling completion alone re-dirties the row.
	done := true
	require.NoError(t, s.UpdateTask(ctx, task.ID, types.TaskUpdate{Completed: &done}))

	pending, err = s.ItemsToSync(ctx, userID)
	require.NoError(t, err)
	require.Len(t, pending.Tasks, 1)
	assert.Equal(t, task.ID, pending.Tasks[0].ID)
	assert.True(t, pending.Tasks[0].Completed)
}

func TestUpdateTaskValidation(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	err := s.UpdateTask(ctx, "some-id", types.TaskUpdate{})
	assert.ErrorIs(t, err, types.ErrEmptyUpdate)

	bad := "urgent"
	err = s.UpdateTask(ctx, "some-id", types.TaskUpdate{Priority: &bad})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	title := "x"
	err = s.UpdateTask(ctx, "missing-id", types.TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	userID := loginKarthik(t, s)

	task, err := s.CreateTask(ctx, userID, types.Task{Title: "gone soon", Date: "2026-09-01"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	err = s.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
