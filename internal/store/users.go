package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/origin-mobile/satchel/pkg/types"
)

// userColumns are the columns hydrated into types.User. The password column
// is deliberately absent; credentials never leave this file.
const userColumns = "id, username, name, email, avatar, theme, sync_id, created_at, last_login"

// Authenticate verifies the credentials, records the login time, and returns
// the user with credentials stripped. An unknown username and a wrong
// password are indistinguishable to the caller: both yield
// types.ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	if err := s.ensureAttachedWrite(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var id, hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, password FROM users WHERE username = ?", username,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user %q: %w", username, err)
	}
	if !checkPassword(hash, password) {
		return nil, types.ErrInvalidCredentials
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login = ? WHERE id = ?", s.timestamp(), id,
	); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	user, err := s.userByIDLocked(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user authenticated", "user_id", id)
	return user, nil
}

// UserByID returns the user with credentials stripped.
// Returns types.ErrNotFound if no such user exists.
func (s *Store) UserByID(ctx context.Context, id string) (*types.User, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.ensureAttachedRead(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	return s.userByIDLocked(ctx, id)
}

// UpdateUserProfile applies a typed partial update to the profile. The ID and
// username are not updatable; a supplied password is re-hashed. Returns
// types.ErrNotFound if no such user exists and types.ErrEmptyUpdate when the
// update carries no fields.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd types.UserProfileUpdate) error {
	if id == "" {
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
	if upd.Name != nil {
		clauses = append(clauses, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.Avatar != nil {
		clauses = append(clauses, "avatar = ?")
		args = append(args, *upd.Avatar)
	}
	if upd.Theme != nil {
		clauses = append(clauses, "theme = ?")
		args = append(args, *upd.Theme)
	}
	if upd.Password != nil {
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		clauses = append(clauses, "password = ?")
		args = append(args, hash)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
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

// userByIDLocked hydrates a user row. The caller must hold s.mu.
func (s *Store) userByIDLocked(ctx context.Context, id string) (*types.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)

	user, err := hydrateUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return user, nil
}

// hydrateUser converts a users row into *types.User.
func hydrateUser(row *sql.Row) (*types.User, error) {
	var u types.User
	var name, email, avatar, syncID, lastLogin sql.NullString
	var createdAt string
	if err := row.Scan(&u.ID, &u.Username, &name, &email, &avatar, &u.Theme,
		&syncID, &createdAt, &lastLogin); err != nil {
		return nil, err
	}
	u.Name = name.String
	u.Email = email.String
	u.Avatar = avatar.String
	u.SyncID = syncID.String

	var err error
	u.CreatedAt, err = parseTimestamp(sql.NullString{String: createdAt, Valid: true})
	if err != nil {
		return nil, err
	}
	u.LastLogin, err = parseTimestamp(lastLogin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
