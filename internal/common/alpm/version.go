// Package alpm provides version ordering for pacman-style version strings.
package alpm

import (
	"strconv"
	"strings"
)

// segment is one dot-separated component of a pkgver: a number with an
// optional lowercase letter tail (e.g. "0a" in "1.0a").
type segment struct {
	num   int
	alpha string
}

// parsedVersion holds a pkgver broken into comparable components.
type parsedVersion struct {
	epoch    int
	segments []segment
}

// parseVersion breaks a pkgver string into components for comparison.
// Returns false if the string does not fit the epoch:numeric.segments
// shape - for example when a commit hash is standing in for a version.
func parseVersion(v string) (parsedVersion, bool) {
	var parsed parsedVersion

	// Optional epoch prefix ("1:2.3.4").
	if idx := strings.IndexByte(v, ':'); idx >= 0 {
		epoch, err := strconv.Atoi(v[:idx])
		if err != nil {
			return parsedVersion{}, false
		}
		parsed.epoch = epoch
		v = v[idx+1:]
	}

	if v == "" {
		return parsedVersion{}, false
	}

	for _, part := range strings.FieldsFunc(v, isSeparator) {
		seg, ok := parseSegment(part)
		if !ok {
			return parsedVersion{}, false
		}
		parsed.segments = append(parsed.segments, seg)
	}
	if len(parsed.segments) == 0 {
		return parsedVersion{}, false
	}

	return parsed, true
}

// isSeparator reports whether r separates version segments.
// pkgver strings use '.', '_' and '+' between components.
func isSeparator(r rune) bool {
	return r == '.' || r == '_' || r == '+'
}

// parseSegment parses a single version segment of the form digits followed
// by an optional letter tail. Segments that start with a letter (such as
// "r47" or "g72b934e1" from VCS-derived versions) do not parse.
func parseSegment(s string) (segment, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return segment{}, false
	}
	num, err := strconv.Atoi(s[:i])
	if err != nil {
		return segment{}, false
	}
	tail := s[i:]
	for _, r := range tail {
		if r < 'a' || r > 'z' {
			return segment{}, false
		}
	}
	return segment{num: num, alpha: tail}, true
}

// compareSegments compares two segment slices element-wise, treating
// missing segments as zero.
func compareSegments(a, b []segment) int {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	for i := 0; i < maxLen; i++ {
		var av, bv segment
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}

		if av.num != bv.num {
			if av.num < bv.num {
				return -1
			}
			return 1
		}
		if av.alpha != bv.alpha {
			if av.alpha < bv.alpha {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CompareVersions compares two pacman pkgver strings.
// Returns -1 if v1 < v2, 0 if equal, 1 if v1 > v2, with ok=true when both
// versions parsed. When either version does not parse, ok is false and the
// ordering is indeterminate.
func CompareVersions(v1, v2 string) (int, bool) {
	p1, ok := parseVersion(v1)
	if !ok {
		return 0, false
	}
	p2, ok := parseVersion(v2)
	if !ok {
		return 0, false
	}

	if p1.epoch != p2.epoch {
		if p1.epoch < p2.epoch {
			return -1, true
		}
		return 1, true
	}

	return compareSegments(p1.segments, p2.segments), true
}

// UpdateDue reports whether the new version/release pair is an update over
// the current pair. Unparsable versions never report due - VCS packages
// with hash-based versions are handled by the devel checker instead.
// On equal versions a strictly greater pkgrel makes the update due.
func UpdateDue(verCur, relCur, verNew, relNew string) bool {
	cmp, ok := CompareVersions(verNew, verCur)
	if !ok {
		return false
	}
	if cmp != 0 {
		return cmp > 0
	}
	return relNew > relCur
}
