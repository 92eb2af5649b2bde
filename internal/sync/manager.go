// Package sync implements per-user sync bookkeeping: an enablement flag, a
// last-attempt timestamp, an advisory due check, and the reconciliation pass
// that marks dirty rows as synced. The remote exchange is simulated; no
// network traffic occurs.
package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/origin-mobile/satchel/internal/blob"
	"github.com/origin-mobile/satchel/internal/logging"
	"github.com/origin-mobile/satchel/internal/store"
	"github.com/origin-mobile/satchel/pkg/types"
)

// Blob store key prefixes. The full key is "<prefix>_<userID>".
const (
	enabledKeyPrefix     = "sync_enabled"
	lastAttemptKeyPrefix = "last_sync_attempt"
)

// DefaultInterval is the minimum time between sync attempts before Due
// reports true again.
const DefaultInterval = 5 * time.Minute

// Manager tracks sync state per user and runs reconciliation passes. There
// is no background timer; callers poll Due and invoke SyncWithServer
// themselves.
type Manager struct {
	store    *store.Store
	blobs    blob.Store
	log      logging.Logger
	interval time.Duration
	now      func() time.Time
}

// NewManager creates a Manager over the given store and blob store with the
// default 5-minute interval. Pass a nil logger to disable logging.
func NewManager(st *store.Store, blobs blob.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:    st,
		blobs:    blobs,
		log:      log,
		interval: DefaultInterval,
		now:      time.Now,
	}
}

// Enabled reports whether sync is enabled for the user. An absent flag
// means disabled.
func (m *Manager) Enabled(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, types.ErrUserIDRequired
	}
	v, err := m.blobs.Get(ctx, enabledKey(userID))
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading sync flag: %w", err)
	}
	return v == "true", nil
}

// SetEnabled turns sync on or off for the user.
func (m *Manager) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	if userID == "" {
		return types.ErrUserIDRequired
	}
	v := "false"
	if enabled {
		v = "true"
	}
	if err := m.blobs.Set(ctx, enabledKey(userID), v); err != nil {
		return fmt.Errorf("writing sync flag: %w", err)
	}
	m.log.Info(ctx, "sync enablement changed", "user_id", userID, "enabled", enabled)
	return nil
}

// LastAttempt returns the time of the user's last sync attempt; the zero
// time when no attempt has been recorded.
func (m *Manager) LastAttempt(ctx context.Context, userID string) (time.Time, error) {
	if userID == "" {
		return time.Time{}, types.ErrUserIDRequired
	}
	v, err := m.blobs.Get(ctx, lastAttemptKey(userID))
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("reading last attempt: %w", err)
	}
	millis, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last attempt %q: %w", v, err)
	}
	return time.UnixMilli(millis), nil
}

// Due reports whether a sync attempt is due: sync must be enabled and at
// least the configured interval must have elapsed since the last attempt.
// Due-ness is advisory; nothing here schedules anything.
func (m *Manager) Due(ctx context.Context, userID string) (bool, error) {
	enabled, err := m.Enabled(ctx, userID)
	if err != nil {
		return false, err
	}
	if !enabled {
		return false, nil
	}

	last, err := m.LastAttempt(ctx, userID)
	if err != nil {
		return false, err
	}
	return m.now().Sub(last) >= m.interval, nil
}

// SyncWithServer runs one reconciliation pass for the user:
// collect every dirty row, exchange with the simulated remote counterpart,
// atomically mark the collected rows synced together with the new token, and
// record the attempt. The attempt timestamp is recorded whether or not the
// pass succeeded.
//
// The returned result is always non-nil; on failure it carries
// Success=false and the error message, and the error is returned alongside.
func (m *Manager) SyncWithServer(ctx context.Context, userID string) (*types.SyncResult, error) {
	if userID == "" {
		res := failure(m.now(), types.ErrUserIDRequired)
		return res, types.ErrUserIDRequired
	}

	// The attempt is recorded regardless of the outcome so a failing sync
	// does not retry in a tight loop.
	defer m.recordAttempt(ctx, userID)

	pending, err := m.store.ItemsToSync(ctx, userID)
	if err != nil {
		return failure(m.now(), err), err
	}

	info, err := m.store.SyncInfo(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return failure(m.now(), err), err
	}
	var prevToken string
	if info != nil {
		prevToken = info.Token
	}

	token, err := m.exchange(ctx, userID, prevToken, pending)
	if err != nil {
		return failure(m.now(), err), err
	}

	if err := m.store.MarkSynced(ctx, userID, pending, token); err != nil {
		return failure(m.now(), err), err
	}

	counts := pending.Counts()
	m.log.Info(ctx, "sync finished",
		"user_id", userID,
		"tasks", counts.Tasks, "media", counts.Media, "notes", counts.Notes,
		"token", token)

	return &types.SyncResult{
		Success:     true,
		SyncedItems: counts,
		Token:       token,
		Timestamp:   m.now().UTC(),
	}, nil
}

// exchange simulates the remote round trip. A real implementation would
// upload the pending rows keyed by sync_id, pass the previous token as a
// cursor, and download changes from other devices; this one only fabricates
// the next token.
func (m *Manager) exchange(ctx context.Context, userID, prevToken string, pending types.PendingItems) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	counts := pending.Counts()
	m.log.Debug(ctx, "exchanging with remote counterpart",
		"user_id", userID,
		"prev_token", prevToken,
		"tasks", counts.Tasks, "media", counts.Media, "notes", counts.Notes,
		"device", deviceInfo().String())

	return strconv.FormatInt(m.now().UnixMilli(), 10), nil
}

// recordAttempt stores the current time as the user's last sync attempt.
// Failures are logged, not returned: a missing attempt record only makes the
// next Due check fire early.
func (m *Manager) recordAttempt(ctx context.Context, userID string) {
	v := strconv.FormatInt(m.now().UnixMilli(), 10)
	if err := m.blobs.Set(ctx, lastAttemptKey(userID), v); err != nil {
		m.log.Warn(ctx, "recording sync attempt failed",
			"user_id", userID, "error", err)
	}
}

func failure(now time.Time, err error) *types.SyncResult {
	return &types.SyncResult{
		Success:   false,
		Timestamp: now.UTC(),
		Error:     err.Error(),
	}
}

func enabledKey(userID string) string {
	return enabledKeyPrefix + "_" + userID
}

func lastAttemptKey(userID string) string {
	return lastAttemptKeyPrefix + "_" + userID
}
