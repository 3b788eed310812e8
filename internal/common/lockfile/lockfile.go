// Package lockfile provides scoped, advisory, cross-process mutual
// exclusion backed by a lock file in the per-user data directory.
//
// Advisory locks only coordinate cooperating processes - other instances
// of this program - they do not prevent anyone else from running the
// guarded tool. The OS releases the lock automatically if the holding
// process dies, so no crash recovery is needed.
package lockfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// retryDelay is how often a blocked acquisition re-attempts the lock.
const retryDelay = 100 * time.Millisecond

// Guard holds an exclusive advisory lock until released.
// Release must be called on every exit path, typically via defer.
type Guard struct {
	fl *flock.Flock
}

// DefaultPath returns the lock file path in the per-user data directory.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "archwatch", "checkupdates.lock")
}

// Acquire opens or creates the lock file at path and takes an exclusive
// advisory lock, waiting until the lock is held or ctx is done.
// I/O errors are surfaced immediately, never retried.
func Acquire(ctx context.Context, path string) (*Guard, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to acquire lock %s", path)
	}

	return &Guard{fl: fl}, nil
}

// Release drops the lock. Safe to call once on any exit path.
func (g *Guard) Release() error {
	return g.fl.Unlock()
}
