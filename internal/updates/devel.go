package updates

import (
	"context"
	"strings"

	"github.com/openarch/archwatch/internal/common/vcs"
)

// develPackages lists installed foreign packages whose name marks them as
// tracking a VCS HEAD.
func (c *Checker) develPackages(ctx context.Context) ([]LocalPackage, error) {
	foreign, err := c.foreignPackages(ctx)
	if err != nil {
		return nil, err
	}

	var devel []LocalPackage
	for _, pkg := range foreign {
		name := strings.ToLower(pkg.Name)
		for _, suffix := range c.develSuffixes {
			if strings.Contains(name, suffix) {
				devel = append(devel, pkg)
				break
			}
		}
	}
	return devel, nil
}

// CheckDevelOnline checks installed devel packages against the current
// refs of their source repositories.
//
// For each devel package the build recipe metadata is fetched from the
// AUR, every trackable source URL is resolved to the remote's current
// short hash, and one record is produced per URL. Foreign packages that
// are not in the AUR are skipped. The cache holds every computed record.
func (c *Checker) CheckDevelOnline(ctx context.Context) ([]DevelUpdate, DevelCache, error) {
	devel, err := c.develPackages(ctx)
	if err != nil {
		return nil, nil, err
	}

	var all DevelCache
	for _, pkg := range devel {
		urls, inAur, err := c.develSourceURLs(ctx, pkg.Name)
		if err != nil {
			return nil, nil, err
		}
		if !inAur {
			continue
		}
		for _, url := range urls {
			ref, err := vcs.HeadIdentifier(ctx, c.vcs, url.Remote, url.Branch)
			if err != nil {
				return nil, nil, err
			}
			all = append(all, DevelUpdate{
				Name:       pkg.Name,
				VersionCur: pkg.Version,
				ReleaseCur: pkg.Release,
				RefIDNew:   ref,
			})
		}
	}

	return dueDevelUpdates(all), all, nil
}

// develSourceURLs fetches a package's build recipe from the AUR and
// returns its trackable source URLs. The second return is false when the
// package is not in the AUR at all.
func (c *Checker) develSourceURLs(ctx context.Context, name string) ([]SourceURL, bool, error) {
	infos, err := c.aur.Info(ctx, []string{name})
	if err != nil {
		return nil, false, err
	}
	if len(infos) == 0 {
		return nil, false, nil
	}

	// The package base can differ from the package name: one base can
	// carry several packages, and the recipe lives under the base.
	raw, err := c.aur.Srcinfo(ctx, infos[0].PackageBase)
	if err != nil {
		return nil, false, err
	}

	var urls []SourceURL
	for _, source := range parseSrcinfoSources(raw) {
		if url, ok := ParseSourceURL(source); ok {
			urls = append(urls, url)
		}
	}
	return urls, true, nil
}

// CheckDevelOffline re-derives the local devel package list and evaluates
// it against cached records by name, with no network use.
func (c *Checker) CheckDevelOffline(ctx context.Context, cache DevelCache) ([]DevelUpdate, error) {
	devel, err := c.develPackages(ctx)
	if err != nil {
		return nil, err
	}

	var updates []DevelUpdate
	for _, pkg := range devel {
		for _, record := range cache {
			if record.Name != pkg.Name {
				continue
			}
			updates = append(updates, DevelUpdate{
				Name:       pkg.Name,
				VersionCur: pkg.Version,
				ReleaseCur: pkg.Release,
				RefIDNew:   record.RefIDNew,
			})
		}
	}

	return dueDevelUpdates(updates), nil
}

func dueDevelUpdates(all []DevelUpdate) []DevelUpdate {
	due := make([]DevelUpdate, 0, len(all))
	for _, update := range all {
		if update.Due() {
			due = append(due, update)
		}
	}
	return due
}
