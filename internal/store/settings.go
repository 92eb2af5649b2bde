package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/origin-mobile/satchel/pkg/types"
)

// Setting returns the row stored for (userID, key).
// Returns types.ErrNotFound if the setting has never been written.
func (s *Store) Setting(ctx context.Context, userID, key string) (*types.Setting, error) {
	if userID == "" || key == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	var st types.Setting
	var value sql.NullString
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, key, value, created_at, updated_at FROM settings WHERE user_id = ? AND key = ?",
		userID, key).Scan(&st.ID, &st.UserID, &st.Key, &value, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting setting %q: %w", key, err)
	}
	st.Value = value.String

	if st.CreatedAt, err = parseTimestamp(sql.NullString{String: createdAt, Valid: true}); err != nil {
		return nil, err
	}
	if st.UpdatedAt, err = parseTimestamp(sql.NullString{String: updatedAt, Valid: true}); err != nil {
		return nil, err
	}
	return &st, nil
}

// SetSetting stores value for (userID, key) with upsert semantics. The write
// is a single atomic insert-or-update; there is no read-before-write window.
func (s *Store) SetSetting(ctx context.Context, userID, key, value string) error {
	if userID == "" || key == "" {
		return types.ErrInvalidID
	}
	if err := s.ensureAttachedWrite(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	now := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, user_id, key, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		newID(), userID, key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	return s.persistLocked(ctx)
}
