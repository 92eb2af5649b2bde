package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/origin-mobile/satchel/pkg/types"
)

const mediaColumns = "id, user_id, name, url, type, size, source, created_at, sync_id, sync_status"

// Media returns the user's gallery items, newest first, optionally filtered
// by media type. An empty or "all" filter returns every item.
func (s *Store) Media(ctx context.Context, userID, mediaType string) ([]types.Media, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	query := "SELECT " + mediaColumns + " FROM media WHERE user_id = ?"
	args := []any{userID}
	if mediaType != "" && mediaType != "all" {
		query += " AND type = ?"
		args = append(args, mediaType)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching media: %w", err)
	}
	defer rows.Close()

	items := []types.Media{}
	for rows.Next() {
		m, err := hydrateMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating media: %w", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media: %w", err)
	}
	return items, nil
}

// SaveMedia inserts a gallery item. A missing ID or sync ID is generated;
// source defaults to camera; the row starts dirty. Returns the stored item.
func (s *Store) SaveMedia(ctx context.Context, userID string, m types.Media) (*types.Media, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}
	if m.Name == "" || m.URL == "" {
		return nil, types.ErrInvalidData
	}
	if m.Type != types.MediaTypeImage && m.Type != types.MediaTypeVideo {
		return nil, types.ErrInvalidData
	}
	if m.Source == "" {
		m.Source = types.SourceCamera
	}
	if m.Source != types.SourceCamera && m.Source != types.SourceImported {
		return nil, types.ErrInvalidData
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	if m.SyncID == "" {
		m.SyncID = newID()
	}
	m.UserID = userID
	m.SyncStatus = types.StatusLocal
	now := s.now().UTC().Truncate(time.Second)
	m.CreatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media (id, user_id, name, url, type, size, source, created_at, sync_id, sync_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Name, m.URL, m.Type, m.Size, m.Source,
		now.Format(time.RFC3339), m.SyncID, m.SyncStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("saving media: %w", err)
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMedia removes a gallery item. Returns types.ErrNotFound if it does
// not exist. The referenced binary content is the caller's to clean up; the
// store only holds the opaque URL.
func (s *Store) DeleteMedia(ctx context.Context, mediaID string) error {
	if mediaID == "" {
		return types.ErrInvalidID
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", mediaID)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
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

// hydrateMedia converts a media row into *types.Media.
func hydrateMedia(rows *sql.Rows) (*types.Media, error) {
	var m types.Media
	var syncID sql.NullString
	var createdAt string
	if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.URL, &m.Type, &m.Size,
		&m.Source, &createdAt, &syncID, &m.SyncStatus); err != nil {
		return nil, err
	}
	m.SyncID = syncID.String

	var err error
	m.CreatedAt, err = parseTimestamp(sql.NullString{String: createdAt, Valid: true})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
