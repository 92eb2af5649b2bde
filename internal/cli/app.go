// Shared helpers for satchel CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/origin-mobile/satchel/internal/blob"
	"github.com/origin-mobile/satchel/internal/logging"
	"github.com/origin-mobile/satchel/internal/store"
	syncpkg "github.com/origin-mobile/satchel/internal/sync"
	"github.com/origin-mobile/satchel/pkg/types"
)

// app bundles the attached store and its collaborators for one command
// invocation. The caller must defer app.close().
type app struct {
	store *store.Store
	sync  *syncpkg.Manager
	blobs blob.Store
	log   logging.Logger
}

// attachApp resolves the data directory, opens the blob store there, and
// attaches the database, restoring it from the persisted image when one
// exists.
func attachApp(ctx context.Context) (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.GetString(cfgKeyLogLevel))

	blobs, err := blob.NewFileStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	st := store.New(blobs, log)
	if err := st.Attach(ctx, types.Config{DataDir: dataDir}); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}

	return &app{
		store: st,
		sync:  syncpkg.NewManager(st, blobs, log),
		blobs: blobs,
		log:   log,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "close store", "error", err)
	}
}

// currentUserID returns the acting user: the --user flag when given,
// otherwise the logged-in user recorded by `satchel login`.
func (a *app) currentUserID(ctx context.Context) (string, error) {
	if flags.user != "" {
		return flags.user, nil
	}
	id, err := a.store.CurrentUserID(ctx)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", errors.New("not logged in (run `satchel login` first)")
		}
		return "", err
	}
	return id, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
