package updates

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseUpdateLine is returned when a checkupdates line does not
	// fit the "name cur-rel -> new-rel" shape
	ErrParseUpdateLine = errors.New("failed to parse checkupdates line")
	// ErrParseForeignLine is returned when a pacman -Qm line does not fit
	// the "name ver-rel" shape
	ErrParseForeignLine = errors.New("failed to parse pacman line")
	// ErrParseVerRel is returned when a combined version string has no
	// pkgver-pkgrel separator
	ErrParseVerRel = errors.New("failed to parse pkgver and pkgrel")
)

// SplitVerRel splits a combined "pkgver-pkgrel" string on the last '-'.
// pkgver may itself contain dashes, pkgrel may not.
func SplitVerRel(s string) (ver, rel string, err error) {
	idx := strings.LastIndexByte(s, '-')
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrParseVerRel, s)
	}
	return s[:idx], s[idx+1:], nil
}

// ParseUpdateLine parses one checkupdates output line.
// Example input: "libadwaita 1:1.6.0-1 -> 1:1.6.1-2"
func ParseUpdateLine(line string) (PacmanUpdate, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 4 {
		return PacmanUpdate{}, fmt.Errorf("%w: %q", ErrParseUpdateLine, line)
	}

	verCur, relCur, err := SplitVerRel(parts[1])
	if err != nil {
		return PacmanUpdate{}, err
	}
	verNew, relNew, err := SplitVerRel(parts[3])
	if err != nil {
		return PacmanUpdate{}, err
	}

	return PacmanUpdate{
		Name:       parts[0],
		VersionCur: verCur,
		ReleaseCur: relCur,
		VersionNew: verNew,
		ReleaseNew: relNew,
	}, nil
}

// parsePendingUpdates parses full checkupdates output. A single malformed
// line fails the whole parse: malformed output means the tool's contract
// changed and partial results would mislead.
func parsePendingUpdates(output string) ([]PacmanUpdate, error) {
	var updates []PacmanUpdate
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		update, err := ParseUpdateLine(line)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	return updates, nil
}

// ParseForeignLine parses one `pacman -Qm` output line.
// Example input: "winetricks-git 20240105.r47.g72b934e1-2"
func ParseForeignLine(line string) (LocalPackage, error) {
	name, rest, found := strings.Cut(line, " ")
	if !found {
		return LocalPackage{}, fmt.Errorf("%w: %q", ErrParseForeignLine, line)
	}

	ver, rel, err := SplitVerRel(rest)
	if err != nil {
		return LocalPackage{}, err
	}

	return LocalPackage{Name: name, Version: ver, Release: rel}, nil
}

// SourceURL is a parsed build-recipe source entry pointing at a git
// remote. An empty Branch means the remote HEAD.
type SourceURL struct {
	Remote   string
	Protocol string
	Branch   string
}

// ParseSourceURL parses a build-recipe source field of the form
// "[filename::]url". Only git URLs are trackable; entries pinned to a
// commit or tag yield no result since they never move. Fragment types
// other than branch fall back to the remote HEAD.
func ParseSourceURL(source string) (SourceURL, bool) {
	url := source
	if _, after, found := strings.Cut(source, "::"); found {
		url = after
	}

	if !strings.HasPrefix(url, "git") || !strings.Contains(url, "://") {
		return SourceURL{}, false
	}

	protocol, rest, _ := strings.Cut(url, "://")
	if idx := strings.LastIndexByte(protocol, '+'); idx >= 0 {
		protocol = protocol[idx+1:]
	}

	remote, fragment, hasFragment := strings.Cut(rest, "#")
	if before, _, found := strings.Cut(remote, "?"); found {
		remote = before
	}
	remote = protocol + "://" + remote

	branch := ""
	if hasFragment {
		if q, _, found := strings.Cut(fragment, "?"); found {
			fragment = q
		}
		fragType, fragValue, hasValue := strings.Cut(fragment, "=")
		switch fragType {
		case "commit", "tag":
			return SourceURL{}, false
		case "branch":
			if hasValue {
				branch = fragValue
			}
		}
	}

	return SourceURL{Remote: remote, Protocol: protocol, Branch: branch}, true
}
