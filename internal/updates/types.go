// Package updates checks installed Arch Linux packages for available
// updates across three sources: pacman sync repositories, the AUR, and
// devel packages tracking a VCS HEAD.
//
// Each source has an online check that uses the network and returns a
// cache alongside its results, and an offline check that reuses that
// cache. Caches are plain immutable values with exactly one producer (the
// online check) and one consumer (the matching offline check).
package updates

import (
	"strings"

	"github.com/openarch/archwatch/internal/common/alpm"
)

// LocalPackage is a snapshot of an installed package, read fresh from
// pacman on every check and never persisted.
type LocalPackage struct {
	Name    string
	Version string
	Release string
}

// PacmanUpdate describes a pending update for a sync-repository package.
type PacmanUpdate struct {
	Name       string
	VersionCur string
	ReleaseCur string
	VersionNew string
	ReleaseNew string
	// Repo is the sync repository the package came from. Empty when the
	// package was not found in the sync listing.
	Repo SourceRepo
}

// AurUpdate describes the installed vs latest state of an AUR package.
type AurUpdate struct {
	Name       string
	VersionCur string
	ReleaseCur string
	VersionNew string
	ReleaseNew string
}

// Due reports whether the AUR package is due for an update.
// Unparsable versions never report due - VCS packages with hash-based
// versions are covered by the devel checker instead.
func (u AurUpdate) Due() bool {
	return alpm.UpdateDue(u.VersionCur, u.ReleaseCur, u.VersionNew, u.ReleaseNew)
}

// DevelUpdate describes the installed state of a devel package against the
// current ref of its source repository. There is no new pkgver/pkgrel for
// a devel package, only the remote ref identifier.
type DevelUpdate struct {
	Name       string
	VersionCur string
	ReleaseCur string
	RefIDNew   string
}

// Due reports whether the devel package is due for a rebuild: the locally
// recorded version does not mention the current remote short hash. This
// relies on VCS packages embedding the hash in pkgver per the packaging
// guidelines; packages with several source URLs get one record each and
// any non-matching record marks the package due.
func (u DevelUpdate) Due() bool {
	return !strings.Contains(u.VersionCur, u.RefIDNew)
}

// AurCache holds the latest known state of every queried AUR package,
// captured by an online check for reuse by offline checks.
type AurCache []AurUpdate

// DevelCache holds every devel record computed by an online check.
type DevelCache []DevelUpdate
