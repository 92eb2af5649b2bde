// Package store implements the embedded relational data layer for Satchel.
// A modernc.org/sqlite database acts as the query engine while the persisted
// representation is a single base64-encoded database image written to the
// blob store after every mutating operation.
package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"github.com/origin-mobile/satchel/internal/blob"
	"github.com/origin-mobile/satchel/internal/logging"
	"github.com/origin-mobile/satchel/pkg/types"
)

// Blob store keys for engine state and session continuity.
const (
	dbImageKey            = "origin_app_db"
	currentUserKey        = "currentUserId"
	scratchDBFile         = "satchel.db"
	exportSnapshotPattern = ".satchel-export-*.tmp"
)

// Persist retry policy. The in-memory engine stays ahead of durable state
// until a Set succeeds, so transient blob store failures get a few ordered
// retries before the error reaches the caller.
const (
	persistMaxRetries   = 3
	persistBaseInterval = 50 * time.Millisecond
)

// Store owns the embedded SQLite engine, the blob store handle, and the
// initialized flag. All operations are methods on this explicit handle; there
// is no package-level engine state. A single-writer lock serializes
// {mutation, export, persist} sequences.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dbPath   string
	blobs    blob.Store
	log      logging.Logger
	now      func() time.Time
}

// New creates a detached Store over the given blob store. Pass a nil logger
// to disable logging. Call Attach before any other operation.
func New(blobs blob.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		blobs: blobs,
		log:   log,
		now:   time.Now,
	}
}

// Attach initializes the engine. When a persisted database image exists it is
// decoded and restored; otherwise a fresh database is created, the schema is
// applied, and the default accounts are seeded. Attach is idempotent: calls
// after a successful attach are no-ops.
func (s *Store) Attach(ctx context.Context, config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return nil
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	s.config = config
	s.dbPath = filepath.Join(config.DataDir, scratchDBFile)

	// The scratch file is never the source of truth; drop any leftover.
	_ = os.Remove(s.dbPath)

	image, err := s.blobs.Get(ctx, dbImageKey)
	switch {
	case err == nil:
		if err := s.restoreLocked(ctx, image); err != nil {
			return err
		}
		s.log.Info(ctx, "database restored from persisted image",
			"bytes", len(image))
	case isNotFound(err):
		if err := s.createLocked(ctx); err != nil {
			return err
		}
		s.log.Info(ctx, "fresh database created and seeded")
	default:
		return fmt.Errorf("loading database image: %w", err)
	}

	s.attached = true
	return nil
}

// Close releases the engine and removes the scratch database file. The
// persisted image in the blob store is untouched. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing engine: %w", err)
		}
		s.db = nil
	}
	_ = os.Remove(s.dbPath)

	s.attached = false
	return nil
}

// Export serializes the full database to a byte image. The image is the
// complete persisted representation; restoring it yields identical query
// results for every table.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrNotAttached
	}
	return s.exportLocked(ctx)
}

// restoreLocked decodes a persisted image, writes it to the scratch file, and
// opens the engine over it. A decoding or open failure means the persisted
// image is unusable and is reported as ErrCorruptImage.
func (s *Store) restoreLocked(ctx context.Context, image string) error {
	raw, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrCorruptImage, err)
	}
	if err := os.WriteFile(s.dbPath, raw, 0o600); err != nil {
		return fmt.Errorf("writing scratch database: %w", err)
	}

	db, err := s.openEngine()
	if err != nil {
		return err
	}

	// A restored image must at least resolve the schema catalog.
	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&n); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", types.ErrCorruptImage, err)
	}

	s.db = db
	return nil
}

// createLocked builds a fresh database: schema, indexes, default accounts,
// and an initial persisted image.
func (s *Store) createLocked(ctx context.Context) error {
	db, err := s.openEngine()
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	s.db = db

	if err := s.seedDefaultUsers(ctx); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	if err := s.persistLocked(ctx); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	return nil
}

// openEngine opens the scratch database file with the pragmas the data layer
// relies on. A single connection keeps VACUUM INTO free of concurrent readers.
func (s *Store) openEngine() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening engine: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return db, nil
}

// exportLocked snapshots the database via VACUUM INTO and returns the bytes.
// The caller must hold s.mu (read or write).
func (s *Store) exportLocked(ctx context.Context) ([]byte, error) {
	tmp, err := os.CreateTemp(s.config.DataDir, exportSnapshotPattern)
	if err != nil {
		return nil, fmt.Errorf("reserving snapshot file: %w", err)
	}
	snapshot := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to write into an existing file. The unique name
	// keeps concurrent exports under the read lock from sharing a snapshot.
	if err := os.Remove(snapshot); err != nil {
		return nil, fmt.Errorf("preparing snapshot file: %w", err)
	}
	defer os.Remove(snapshot)

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", snapshot); err != nil {
		return nil, fmt.Errorf("exporting database: %w", err)
	}

	raw, err := os.ReadFile(snapshot)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return raw, nil
}

// persistLocked exports the database and writes the base64 image to the blob
// store with bounded retry and exponential backoff. On failure the in-memory
// engine state is ahead of durable state until the next successful persist.
// The caller must hold s.mu.
func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := s.exportLocked(ctx)
	if err != nil {
		return err
	}
	image := base64.StdEncoding.EncodeToString(raw)

	backoff := retry.WithMaxRetries(persistMaxRetries,
		retry.NewExponential(persistBaseInterval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.blobs.Set(ctx, dbImageKey, image); err != nil {
			s.log.Warn(ctx, "persisting database image failed, retrying",
				"error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persisting database image: %w", err)
	}
	return nil
}

// ensureAttachedRead acquires the read lock and verifies the engine is
// attached. The caller must defer s.mu.RUnlock when err is nil.
func (s *Store) ensureAttachedRead() error {
	s.mu.RLock()
	if !s.attached {
		s.mu.RUnlock()
		return types.ErrNotAttached
	}
	return nil
}

// ensureAttachedWrite acquires the write lock and verifies the engine is
// attached. The caller must defer s.mu.Unlock when err is nil.
func (s *Store) ensureAttachedWrite() error {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return types.ErrNotAttached
	}
	return nil
}

// timestamp returns the current time formatted for column storage.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// newID generates a UUID v7 for row identifiers and sync IDs.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// UUID v4 needs no monotonic clock source.
		return uuid.New().String()
	}
	return id.String()
}

// isNotFound reports whether err marks an absent blob key.
func isNotFound(err error) bool {
	return errors.Is(err, blob.ErrKeyNotFound)
}

// parseTimestamp parses a stored RFC3339 column value; a NULL or empty value
// yields the zero time.
func parseTimestamp(v sql.NullString) (time.Time, error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", v.String, err)
	}
	return t, nil
}
