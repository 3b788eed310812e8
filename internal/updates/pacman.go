package updates

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/openarch/archwatch/internal/common/lockfile"
)

// CheckPacmanOnline checks sync-repository packages for pending updates.
// It refreshes a copy of the sync databases via checkupdates and, in
// parallel, pulls the sync listing used to annotate each update with its
// source repository. The listing is returned as the cache for offline
// checks, since repository membership changes rarely.
//
// checkupdates in sync mode rejects concurrent invocations system-wide,
// so the whole check runs under the cross-process lock. Another process
// running checkupdates outside this program can still make it fail; the
// poller retries naturally on the next online tick.
func (c *Checker) CheckPacmanOnline(ctx context.Context) ([]PacmanUpdate, SourcesList, error) {
	guard, err := lockfile.Acquire(ctx, c.lockPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire checkupdates lock: %w", err)
	}
	defer guard.Release()

	var updatesOut, listingOut string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := c.pacman.CheckUpdates(gctx, true)
		updatesOut = out
		return err
	})
	g.Go(func() error {
		out, err := c.pacman.SyncList(gctx)
		listingOut = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	parsed, err := parsePendingUpdates(updatesOut)
	if err != nil {
		return nil, nil, err
	}

	sources := ParseSourcesList(listingOut)
	return annotateSources(parsed, sources), sources, nil
}

// CheckPacmanOffline re-runs checkupdates against the existing database
// copy (no network) and annotates with the cached sync listing. Safe to
// run concurrently, so it does not take the lock.
func (c *Checker) CheckPacmanOffline(ctx context.Context, cache SourcesList) ([]PacmanUpdate, error) {
	updatesOut, err := c.pacman.CheckUpdates(ctx, false)
	if err != nil {
		return nil, err
	}

	parsed, err := parsePendingUpdates(updatesOut)
	if err != nil {
		return nil, err
	}

	return annotateSources(parsed, cache), nil
}
