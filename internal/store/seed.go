package store

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultAccount describes a user account seeded on first creation of the
// database. Seeding never runs against a restored image.
type defaultAccount struct {
	username string
	password string
	name     string
	email    string
	theme    string
}

// defaultAccounts are the two accounts available before any profile editing.
var defaultAccounts = []defaultAccount{
	{
		username: "KARTHIK",
		password: "7013178749",
		name:     "Karthik",
		email:    "karthik@example.com",
		theme:    "dark-gold",
	},
	{
		username: "USER",
		password: "7013178749",
		name:     "Default User",
		email:    "user@example.com",
		theme:    "dark-gold",
	},
}

// seedDefaultUsers inserts the default accounts if the users table is empty.
// Guarded by a COUNT so a repeat call cannot duplicate accounts.
func (s *Store) seedDefaultUsers(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.timestamp()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, acct := range defaultAccounts {
		hash, err := hashPassword(acct.password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", acct.username, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, username, password, name, email, theme, sync_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			newID(), acct.username, hash, acct.name, acct.email, acct.theme, newID(), now,
		)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", acct.username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// hashPassword derives a salted bcrypt hash from the plaintext password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword reports whether the plaintext password matches the stored
// hash.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
