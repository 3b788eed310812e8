package updates

import (
	"reflect"
	"testing"
)

func TestParseSrcinfoSources(t *testing.T) {
	raw := `pkgbase = winetricks-git
	pkgdesc = Script to install various Windows software
	pkgver = 20240105.r47.g72b934e1
	source = winetricks::git+https://github.com/Winetricks/winetricks.git
	source_x86_64 = git+https://example.com/amd64-only.git
	sha256sums = SKIP
	# a comment line
	arch = any

pkgname = winetricks-git
`
	got := parseSrcinfoSources(raw)
	want := []string{
		"winetricks::git+https://github.com/Winetricks/winetricks.git",
		"git+https://example.com/amd64-only.git",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSrcinfoSources = %v, want %v", got, want)
	}
}

func TestParseSrcinfoSourcesEmpty(t *testing.T) {
	if got := parseSrcinfoSources("pkgbase = foo\narch = any\n"); got != nil {
		t.Errorf("expected no sources, got %v", got)
	}
	if got := parseSrcinfoSources(""); got != nil {
		t.Errorf("expected no sources for empty input, got %v", got)
	}
}

func TestDevelUpdateDue(t *testing.T) {
	tests := []struct {
		name   string
		verCur string
		ref    string
		want   bool
	}{
		{"hash embedded", "20240105.r47.g72b934e1", "72b934e", false},
		{"hash missing", "20240105.r47.g72b934e1", "a1b2c3d", true},
		{"hash is whole version", "72b934e", "72b934e", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := DevelUpdate{Name: "pkg-git", VersionCur: tt.verCur, RefIDNew: tt.ref}
			if got := u.Due(); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}
