package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/origin-mobile/satchel/pkg/types"
)

// SyncInfo returns the record of the user's last successful reconciliation.
// Returns types.ErrNotFound if the user has never completed a sync.
func (s *Store) SyncInfo(ctx context.Context, userID string) (*types.SyncInfo, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	var info types.SyncInfo
	var lastSync string
	var token sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, last_sync, sync_token FROM sync_info WHERE user_id = ?",
		userID).Scan(&info.UserID, &lastSync, &token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting sync info: %w", err)
	}
	info.Token = token.String

	info.LastSync, err = parseTimestamp(sql.NullString{String: lastSync, Valid: true})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ItemsToSync collects every dirty row (sync_status local) across tasks,
// media, and notes for the user. Read-only; no rows are locked or marked.
func (s *Store) ItemsToSync(ctx context.Context, userID string) (types.PendingItems, error) {
	var pending types.PendingItems
	if userID == "" {
		return pending, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return pending, err
	}
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? AND sync_status = ?",
		userID, types.StatusLocal)
	if err != nil {
		return pending, fmt.Errorf("collecting dirty tasks: %w", err)
	}
	for rows.Next() {
		t, err := hydrateTask(rows)
		if err != nil {
			rows.Close()
			return pending, fmt.Errorf("hydrating dirty task: %w", err)
		}
		pending.Tasks = append(pending.Tasks, *t)
	}
	if err := closeRows(rows); err != nil {
		return pending, err
	}

	rows, err = s.db.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE user_id = ? AND sync_status = ?",
		userID, types.StatusLocal)
	if err != nil {
		return pending, fmt.Errorf("collecting dirty media: %w", err)
	}
	for rows.Next() {
		m, err := hydrateMedia(rows)
		if err != nil {
			rows.Close()
			return pending, fmt.Errorf("hydrating dirty media: %w", err)
		}
		pending.Media = append(pending.Media, *m)
	}
	if err := closeRows(rows); err != nil {
		return pending, err
	}

	rows, err = s.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? AND sync_status = ?",
		userID, types.StatusLocal)
	if err != nil {
		return pending, fmt.Errorf("collecting dirty notes: %w", err)
	}
	for rows.Next() {
		n, err := hydrateNote(rows)
		if err != nil {
			rows.Close()
			return pending, fmt.Errorf("hydrating dirty note: %w", err)
		}
		pending.Notes = append(pending.Notes, *n)
	}
	if err := closeRows(rows); err != nil {
		return pending, err
	}

	return pending, nil
}

// MarkSynced transitions exactly the collected rows to sync_status synced and
// overwrites the user's sync_info row with the new token, all in a single
// transaction: either every entity type is marked and the token recorded, or
// nothing is. One persist covers the whole transition.
func (s *Store) MarkSynced(ctx context.Context, userID string, pending types.PendingItems, token string) error {
	if userID == "" {
		return types.ErrInvalidID
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning mark-synced transaction: %w", err)
	}
	defer tx.Rollback()

	if err := markRows(ctx, tx, types.TasksTable, userID, taskIDs(pending.Tasks)); err != nil {
		return err
	}
	if err := markRows(ctx, tx, types.MediaTable, userID, mediaIDs(pending.Media)); err != nil {
		return err
	}
	if err := markRows(ctx, tx, types.NotesTable, userID, noteIDs(pending.Notes)); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_info (user_id, last_sync, sync_token) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET last_sync = excluded.last_sync, sync_token = excluded.sync_token`,
		userID, s.timestamp(), token,
	)
	if err != nil {
		return fmt.Errorf("recording sync info: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mark-synced transaction: %w", err)
	}

	return s.persistLocked(ctx)
}

// markRows flips sync_status to synced for the given row IDs via an IN-list
// update scoped to the owning user.
func markRows(ctx context.Context, tx *sql.Tx, table, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+2)
	args = append(args, types.StatusSynced, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET sync_status = ? WHERE user_id = ? AND id IN ("+placeholders+")",
		args...)
	if err != nil {
		return fmt.Errorf("marking %s synced: %w", table, err)
	}
	return nil
}

func taskIDs(tasks []types.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func mediaIDs(media []types.Media) []string {
	ids := make([]string, len(media))
	for i, m := range media {
		ids[i] = m.ID
	}
	return ids
}

func noteIDs(notes []types.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

// closeRows closes the rows and surfaces any iteration error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating rows: %w", err)
	}
	return rows.Close()
}
