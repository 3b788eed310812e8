package updates

import (
	"errors"
	"testing"
)

func TestSplitVerRel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantVer string
		wantRel string
		wantErr bool
	}{
		{"simple", "1.6.1-2", "1.6.1", "2", false},
		{"epoch", "1:1.6.0-1", "1:1.6.0", "1", false},
		{"dashes in pkgver", "2024.01-05-3", "2024.01-05", "3", false},
		{"vcs version", "20240105.r47.g72b934e1-2", "20240105.r47.g72b934e1", "2", false},
		{"no separator", "1.6.1", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ver, rel, err := SplitVerRel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrParseVerRel) {
					t.Fatalf("SplitVerRel(%q) error = %v, want ErrParseVerRel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitVerRel(%q) unexpected error: %v", tt.input, err)
			}
			if ver != tt.wantVer || rel != tt.wantRel {
				t.Errorf("SplitVerRel(%q) = (%q, %q), want (%q, %q)", tt.input, ver, rel, tt.wantVer, tt.wantRel)
			}
		})
	}
}

func TestParseUpdateLine(t *testing.T) {
	update, err := ParseUpdateLine("libadwaita 1:1.6.0-1 -> 1:1.6.1-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := PacmanUpdate{
		Name:       "libadwaita",
		VersionCur: "1:1.6.0",
		ReleaseCur: "1",
		VersionNew: "1:1.6.1",
		ReleaseNew: "2",
	}
	if update != want {
		t.Errorf("ParseUpdateLine = %+v, want %+v", update, want)
	}
}

func TestParseUpdateLineMalformed(t *testing.T) {
	malformed := []string{
		"",
		"libadwaita",
		"libadwaita 1.6.0-1",
		"libadwaita 1.6.0-1 ->",
		"libadwaita noseparator -> 1.6.1-2",
	}
	for _, line := range malformed {
		if _, err := ParseUpdateLine(line); err == nil {
			t.Errorf("ParseUpdateLine(%q) = nil error, want failure", line)
		}
	}
}

func TestParsePendingUpdates(t *testing.T) {
	output := "libadwaita 1:1.6.0-1 -> 1:1.6.1-2\n\nlinux 6.11.0-1 -> 6.11.1-1\n"
	updates, err := parsePendingUpdates(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[1].Name != "linux" || updates[1].VersionNew != "6.11.1" {
		t.Errorf("second update = %+v", updates[1])
	}
}

func TestParsePendingUpdatesFailsWhole(t *testing.T) {
	output := "libadwaita 1:1.6.0-1 -> 1:1.6.1-2\ngarbage line here without arrow\n"
	if _, err := parsePendingUpdates(output); err == nil {
		t.Fatal("expected error for malformed line, got nil")
	}
}

func TestParseForeignLine(t *testing.T) {
	pkg, err := ParseForeignLine("winetricks-git 20240105.r47.g72b934e1-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := LocalPackage{
		Name:    "winetricks-git",
		Version: "20240105.r47.g72b934e1",
		Release: "2",
	}
	if pkg != want {
		t.Errorf("ParseForeignLine = %+v, want %+v", pkg, want)
	}

	if _, err := ParseForeignLine("nospacehere"); !errors.Is(err, ErrParseForeignLine) {
		t.Errorf("error = %v, want ErrParseForeignLine", err)
	}
	if _, err := ParseForeignLine("name noseparator"); !errors.Is(err, ErrParseVerRel) {
		t.Errorf("error = %v, want ErrParseVerRel", err)
	}
}

func TestParseSourceURL(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   SourceURL
		wantOK bool
	}{
		{
			name:   "plain git url",
			source: "git://example.com/repo.git",
			want:   SourceURL{Remote: "git://example.com/repo.git", Protocol: "git"},
			wantOK: true,
		},
		{
			name:   "git over https",
			source: "git+https://github.com/user/repo.git",
			want:   SourceURL{Remote: "https://github.com/user/repo.git", Protocol: "https"},
			wantOK: true,
		},
		{
			name:   "filename prefix",
			source: "repo::git+https://github.com/user/repo.git",
			want:   SourceURL{Remote: "https://github.com/user/repo.git", Protocol: "https"},
			wantOK: true,
		},
		{
			name:   "branch fragment",
			source: "pkg::git+https://host/path.git#branch=main",
			want:   SourceURL{Remote: "https://host/path.git", Protocol: "https", Branch: "main"},
			wantOK: true,
		},
		{
			name:   "query stripped from remote",
			source: "git+https://host/path.git?signed#branch=dev",
			want:   SourceURL{Remote: "https://host/path.git", Protocol: "https", Branch: "dev"},
			wantOK: true,
		},
		{
			name:   "query stripped from fragment",
			source: "git+https://host/path.git#branch=dev?signed",
			want:   SourceURL{Remote: "https://host/path.git", Protocol: "https", Branch: "dev"},
			wantOK: true,
		},
		{
			name:   "unknown fragment falls back to HEAD",
			source: "git+https://host/path.git#something=x",
			want:   SourceURL{Remote: "https://host/path.git", Protocol: "https"},
			wantOK: true,
		},
		{"pinned to commit", "git+https://host/path.git#commit=abc123", SourceURL{}, false},
		{"pinned to tag", "git+https://host/path.git#tag=v1.0", SourceURL{}, false},
		{"not git", "https://example.com/tarball.tar.gz", SourceURL{}, false},
		{"no scheme", "git-something-without-scheme", SourceURL{}, false},
		{"local file", "pkg.install", SourceURL{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSourceURL(tt.source)
			if ok != tt.wantOK {
				t.Fatalf("ParseSourceURL(%q) ok = %v, want %v", tt.source, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseSourceURL(%q) = %+v, want %+v", tt.source, got, tt.want)
			}
		})
	}
}
