package updates

import "strings"

// SourceRepo names the sync repository a pacman package came from.
// Official repositories get the constants below; packages from unofficial
// user repositories carry the repository name through as-is.
type SourceRepo string

const (
	RepoCore            SourceRepo = "core"
	RepoExtra           SourceRepo = "extra"
	RepoMultilib        SourceRepo = "multilib"
	RepoCoreTesting     SourceRepo = "core-testing"
	RepoExtraTesting    SourceRepo = "extra-testing"
	RepoMultilibTesting SourceRepo = "multilib-testing"
	RepoGnomeUnstable   SourceRepo = "gnome-unstable"
	RepoKdeUnstable     SourceRepo = "kde-unstable"
)

var officialRepos = map[SourceRepo]bool{
	RepoCore:            true,
	RepoExtra:           true,
	RepoMultilib:        true,
	RepoCoreTesting:     true,
	RepoExtraTesting:    true,
	RepoMultilibTesting: true,
	RepoGnomeUnstable:   true,
	RepoKdeUnstable:     true,
}

// Official reports whether the repository is one of the official Arch
// sync repositories.
func (r SourceRepo) Official() bool {
	return officialRepos[r]
}

// SourcesList maps package names to the sync repository providing them.
// It is the cache captured by an online pacman check: repository
// membership changes rarely, so offline checks reuse it for annotation.
type SourcesList map[string]SourceRepo

// ParseSourcesList parses `pacman -Sl` output into a SourcesList.
// Lines look like "{repo} {pkgname} {ver-rel} [installed]". Lines that do
// not fit are skipped: the listing is an annotation source, not an
// authoritative update feed, so a missing entry only means an absent repo
// annotation later.
func ParseSourcesList(output string) SourcesList {
	sources := make(SourcesList)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		sources[fields[1]] = SourceRepo(fields[0])
	}
	return sources
}

// annotateSources joins parsed pending updates with their resolved
// repositories. Packages absent from the list keep an empty Repo.
func annotateSources(parsed []PacmanUpdate, sources SourcesList) []PacmanUpdate {
	annotated := make([]PacmanUpdate, 0, len(parsed))
	for _, update := range parsed {
		update.Repo = sources[update.Name]
		annotated = append(annotated, update)
	}
	return annotated
}
