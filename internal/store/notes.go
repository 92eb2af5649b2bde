package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/origin-mobile/satchel/pkg/types"
)

const noteColumns = "id, user_id, title, content, created_at, updated_at, sync_id, sync_status"

// Notes returns the user's notes ordered by last modification, newest first.
func (s *Store) Notes(ctx context.Context, userID string) ([]types.Note, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? ORDER BY updated_at DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("fetching notes: %w", err)
	}
	defer rows.Close()

	notes := []types.Note{}
	for rows.Next() {
		n, err := hydrateNote(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating note: %w", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

// CreateNote inserts a note for the user. A missing ID or sync ID is
// generated; the row starts dirty. Returns the stored note.
func (s *Store) CreateNote(ctx context.Context, userID string, n types.Note) (*types.Note, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if n.Title == "" {
		return nil, types.ErrInvalidData
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = newID()
	}
	if n.SyncID == "" {
		n.SyncID = newID()
	}
	n.UserID = userID
	n.SyncStatus = types.StatusLocal
	now := s.now().UTC().Truncate(time.Second)
	n.CreatedAt = now
	n.UpdatedAt = now
	nowStr := now.Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, created_at, updated_at, sync_id, sync_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, nowStr, nowStr, n.SyncID, n.SyncStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNote applies a typed partial update, resetting sync_status to local
// and refreshing updated_at. Returns types.ErrNotFound if the note does not
// exist.
func (s *Store) UpdateNote(ctx context.Context, noteID string, upd types.NoteUpdate) error {
	if noteID == "" {
		return types.ErrInvalidID
	}
	if upd.IsEmpty() {
		return types.ErrEmptyUpdate
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
	if upd.Content != nil {
		clauses = append(clauses, "content = ?")
		args = append(args, *upd.Content)
	}
	clauses = append(clauses, "updated_at = ?", "sync_status = ?")
	args = append(args, s.timestamp(), types.StatusLocal, noteID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE notes SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
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

// DeleteNote removes a note. Returns types.ErrNotFound if it does not exist.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	if noteID == "" {
		return types.ErrInvalidID
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", noteID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
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

// hydrateNote converts a notes row into *types.Note.
func hydrateNote(rows *sql.Rows) (*types.Note, error) {
	var n types.Note
	var syncID sql.NullString
	var createdAt, updatedAt string
	if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content,
		&createdAt, &updatedAt, &syncID, &n.SyncStatus); err != nil {
		return nil, err
	}
	n.SyncID = syncID.String

	var err error
	n.CreatedAt, err = parseTimestamp(sql.NullString{String: createdAt, Valid: true})
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTimestamp(sql.NullString{String: updatedAt, Valid: true})
	if err != nil {
		return nil, err
	}
	return &n, nil
}
