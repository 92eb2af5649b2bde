package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/origin-mobile/satchel/pkg/types"
)

const taskColumns = "id, user_id, title, time, priority, date, completed, created_at, updated_at, sync_id, sync_status"

// Tasks returns the user's tasks, optionally restricted to one ISO date.
// Rows are ordered by time ascending; tasks without a time sort first.
func (s *Store) Tasks(ctx context.Context, userID, date string) ([]types.Task, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []any{userID}
	if date != "" {
		query += " AND date = ?"
		args = append(args, date)
	}
	query += " ORDER BY time ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		task, err := hydrateTask(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a task for the user. A missing ID or sync ID is
// generated; priority defaults to medium; the row starts dirty
// (sync_status local). Returns the stored task.
func (s *Store) CreateTask(ctx context.Context, userID string, t types.Task) (*types.Task, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if t.Title == "" || t.Date == "" {
		return nil, types.ErrInvalidData
	}
	if t.Priority == "" {
		t.Priority = types.PriorityMedium
	}
	if !types.ValidPriority(t.Priority) {
		return nil, types.ErrInvalidData
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = newID()
	}
	if t.SyncID == "" {
		t.SyncID = newID()
	}
	t.UserID = userID
	t.SyncStatus = types.StatusLocal
	now := s.now().UTC().Truncate(time.Second)
	t.CreatedAt = now
	t.UpdatedAt = now
	nowStr := now.Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, time, priority, date, completed, created_at, updated_at, sync_id, sync_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, nullable(t.Time), t.Priority, t.Date,
		boolToInt(t.Completed), nowStr, nowStr, t.SyncID, t.SyncStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a typed partial update. Any applied update resets the
// row's sync_status to local and refreshes updated_at; toggling completion
// alone is therefore sync-significant. Returns types.ErrNotFound if the task
// does not exist.
func (s *Store) UpdateTask(ctx context.Context, taskID string, upd types.TaskUpdate) error {
	if taskID == "" {
		return types.ErrInvalidID
	}
	if upd.IsEmpty() {
		return types.ErrEmptyUpdate
	}
	if upd.Priority != nil && !types.ValidPriority(*upd.Priority) {
		return types.ErrInvalidData
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	var clauses []string
	var args []any
	if upd.Title != nil {
		clauses = append(clauses, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Time != nil {
		clauses = append(clauses, "time = ?")
		args = append(args, nullable(*upd.Time))
	}
	if upd.Priority != nil {
		clauses = append(clauses, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.Date != nil {
		clauses = append(clauses, "date = ?")
		args = append(args, *upd.Date)
	}
	if upd.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolToInt(*upd.Completed))
	}
	clauses = append(clauses, "updated_at = ?", "sync_status = ?")
	args = append(args, s.timestamp(), types.StatusLocal, taskID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	return s.persistLocked(ctx)
}

// DeleteTask removes a task. Returns types.ErrNotFound if it does not exist.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return types.ErrInvalidID
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	return s.persistLocked(ctx)
}

// hydrateTask converts a tasks row into *types.Task.
func hydrateTask(rows *sql.Rows) (*types.Task, error) {
	var t types.Task
	var taskTime, syncID sql.NullString
	var completed int
	var createdAt, updatedAt string
	if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &taskTime, &t.Priority,
		&t.Date, &completed, &createdAt, &updatedAt, &syncID, &t.SyncStatus); err != nil {
		return nil, err
	}
	t.Time = taskTime.String
	t.SyncID = syncID.String
	t.Completed = completed != 0

	var err error
	t.CreatedAt, err = parseTimestamp(sql.NullString{String: createdAt, Valid: true})
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTimestamp(sql.NullString{String: updatedAt, Valid: true})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullable maps an empty string to SQL NULL so empty values sort before any
// populated value under ASC ordering.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
