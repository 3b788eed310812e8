package updates

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// foreignPackages lists locally installed packages that are not in any
// sync database, excluding anything pacman is configured to ignore.
func (c *Checker) foreignPackages(ctx context.Context) ([]LocalPackage, error) {
	var foreignOut, ignoredOut string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := c.pacman.ForeignPackages(gctx)
		foreignOut = out
		return err
	})
	g.Go(func() error {
		out, err := c.pacman.IgnoredPackages(gctx)
		ignoredOut = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ignored []string
	for _, name := range strings.Split(ignoredOut, "\n") {
		if name = strings.TrimSpace(name); name != "" {
			ignored = append(ignored, name)
		}
	}

	var packages []LocalPackage
	for _, line := range strings.Split(foreignOut, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineMentionsAny(line, ignored) {
			continue
		}
		pkg, err := ParseForeignLine(line)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func lineMentionsAny(line string, names []string) bool {
	for _, name := range names {
		if strings.Contains(line, name) {
			return true
		}
	}
	return false
}

// CheckAurOnline checks installed foreign packages against the AUR.
// The returned cache holds the latest known state of every queried
// package - not just the due ones - so offline checks can re-evaluate
// against a fresh local listing.
func (c *Checker) CheckAurOnline(ctx context.Context) ([]AurUpdate, AurCache, error) {
	local, err := c.foreignPackages(ctx)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(local))
	byName := make(map[string]LocalPackage, len(local))
	for _, pkg := range local {
		names = append(names, pkg.Name)
		byName[pkg.Name] = pkg
	}

	infos, err := c.aur.Info(ctx, names)
	if err != nil {
		return nil, nil, err
	}

	cache := make(AurCache, 0, len(infos))
	for _, info := range infos {
		pkg, ok := byName[info.Name]
		if !ok {
			// The API returned a package we did not ask about.
			continue
		}
		verNew, relNew, err := SplitVerRel(info.Version)
		if err != nil {
			return nil, nil, err
		}
		cache = append(cache, AurUpdate{
			Name:       pkg.Name,
			VersionCur: pkg.Version,
			ReleaseCur: pkg.Release,
			VersionNew: verNew,
			ReleaseNew: relNew,
		})
	}

	return dueAurUpdates(cache), cache, nil
}

// CheckAurOffline re-lists local foreign packages without touching the
// network and evaluates them against the cached AUR state. Packages
// missing from the cache are treated as current: the offline due-set can
// only ever be a subset of what the online snapshot reported.
func (c *Checker) CheckAurOffline(ctx context.Context, cache AurCache) ([]AurUpdate, error) {
	local, err := c.foreignPackages(ctx)
	if err != nil {
		return nil, err
	}

	cached := make(map[string]AurUpdate, len(cache))
	for _, update := range cache {
		cached[update.Name] = update
	}

	updates := make([]AurUpdate, 0, len(local))
	for _, pkg := range local {
		verNew, relNew := pkg.Version, pkg.Release
		if hit, ok := cached[pkg.Name]; ok {
			verNew, relNew = hit.VersionNew, hit.ReleaseNew
		}
		updates = append(updates, AurUpdate{
			Name:       pkg.Name,
			VersionCur: pkg.Version,
			ReleaseCur: pkg.Release,
			VersionNew: verNew,
			ReleaseNew: relNew,
		})
	}

	return dueAurUpdates(updates), nil
}

func dueAurUpdates(all []AurUpdate) []AurUpdate {
	due := make([]AurUpdate, 0, len(all))
	for _, update := range all {
		if update.Due() {
			due = append(due, update)
		}
	}
	return due
}
