package pacman

import "context"

// Runner defines the pacman tooling operations the checkers need.
// This interface allows for mocking pacman in tests.
type Runner interface {
	// ForeignPackages returns the raw output of `pacman -Qm`, one
	// "name ver-rel" line per locally installed foreign package.
	ForeignPackages(ctx context.Context) (string, error)

	// IgnoredPackages returns the raw output of `pacman-conf IgnorePkg`,
	// one package name per line.
	IgnoredPackages(ctx context.Context) (string, error)

	// SyncList returns the raw output of `pacman -Sl`, one
	// "repo name ver-rel [installed]" line per sync database package.
	SyncList(ctx context.Context) (string, error)

	// CheckUpdates returns the raw output of `checkupdates`, one
	// "name cur-rel -> new-rel" line per pending update. With sync set,
	// the sync databases are refreshed first; that mode rejects
	// concurrent invocations system-wide.
	CheckUpdates(ctx context.Context, sync bool) (string, error)
}
