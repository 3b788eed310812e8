package updates

import (
	"context"

	"github.com/openarch/archwatch/internal/common/aurweb"
	"github.com/openarch/archwatch/internal/common/lockfile"
	"github.com/openarch/archwatch/internal/common/pacman"
	"github.com/openarch/archwatch/internal/common/vcs"
)

// DefaultDevelSuffixes mark foreign packages whose version tracks a VCS
// HEAD rather than a tagged release.
var DefaultDevelSuffixes = []string{"-git"}

// AurClient is the AUR web surface the checkers need.
// Implemented by *aurweb.Client; an interface so tests can stub the AUR.
type AurClient interface {
	Info(ctx context.Context, names []string) ([]aurweb.PackageInfo, error)
	Srcinfo(ctx context.Context, base string) (string, error)
}

// Checker runs the per-source update checks.
// It coordinates the pacman tooling, the AUR web client and remote VCS
// queries. All checks are read-only and idempotent.
type Checker struct {
	pacman        pacman.Runner
	aur           AurClient
	vcs           vcs.RemoteLister
	lockPath      string
	develSuffixes []string
}

// CheckerOption is a functional option for configuring Checker
type CheckerOption func(*Checker)

// WithPacmanRunner sets a custom pacman runner
func WithPacmanRunner(runner pacman.Runner) CheckerOption {
	return func(c *Checker) {
		c.pacman = runner
	}
}

// WithAurClient sets a custom AUR client
func WithAurClient(client AurClient) CheckerOption {
	return func(c *Checker) {
		c.aur = client
	}
}

// WithRemoteLister sets a custom VCS remote lister
func WithRemoteLister(lister vcs.RemoteLister) CheckerOption {
	return func(c *Checker) {
		c.vcs = lister
	}
}

// WithLockPath sets a custom lock file path for the exclusive section of
// the online pacman check
func WithLockPath(path string) CheckerOption {
	return func(c *Checker) {
		c.lockPath = path
	}
}

// WithDevelSuffixes sets the suffixes identifying devel packages
func WithDevelSuffixes(suffixes []string) CheckerOption {
	return func(c *Checker) {
		c.develSuffixes = suffixes
	}
}

// NewChecker creates a checker backed by the system pacman tools, the AUR
// web API and the git binary.
func NewChecker(opts ...CheckerOption) *Checker {
	checker := &Checker{
		pacman:        pacman.NewCLIRunner(),
		aur:           aurweb.NewClient(),
		vcs:           vcs.NewCLILister(),
		lockPath:      lockfile.DefaultPath(),
		develSuffixes: DefaultDevelSuffixes,
	}
	for _, opt := range opts {
		opt(checker)
	}
	return checker
}
