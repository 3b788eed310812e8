package updates

import "testing"

func TestParseSourcesList(t *testing.T) {
	output := `core linux 6.11.1-1 [installed]
extra libadwaita 1:1.6.1-2
multilib lib32-glibc 2.40-1
garbage
short line
custom-repo mytool 1.0-1
`
	sources := ParseSourcesList(output)

	tests := []struct {
		pkg  string
		want SourceRepo
	}{
		{"linux", RepoCore},
		{"libadwaita", RepoExtra},
		{"lib32-glibc", RepoMultilib},
		{"mytool", SourceRepo("custom-repo")},
	}
	for _, tt := range tests {
		if got := sources[tt.pkg]; got != tt.want {
			t.Errorf("sources[%q] = %q, want %q", tt.pkg, got, tt.want)
		}
	}
	if len(sources) != 4 {
		t.Errorf("got %d entries, want 4", len(sources))
	}
}

func TestSourceRepoOfficial(t *testing.T) {
	official := []SourceRepo{
		RepoCore, RepoExtra, RepoMultilib,
		RepoCoreTesting, RepoExtraTesting, RepoMultilibTesting,
		RepoGnomeUnstable, RepoKdeUnstable,
	}
	for _, repo := range official {
		if !repo.Official() {
			t.Errorf("%q.Official() = false, want true", repo)
		}
	}
	for _, repo := range []SourceRepo{"custom-repo", "chaotic-aur", ""} {
		if repo.Official() {
			t.Errorf("%q.Official() = true, want false", repo)
		}
	}
}

func TestAnnotateSources(t *testing.T) {
	parsed := []PacmanUpdate{
		{Name: "linux", VersionCur: "6.11.0", ReleaseCur: "1", VersionNew: "6.11.1", ReleaseNew: "1"},
		{Name: "unknown-pkg", VersionCur: "1.0", ReleaseCur: "1", VersionNew: "1.1", ReleaseNew: "1"},
	}
	sources := SourcesList{"linux": RepoCore}

	annotated := annotateSources(parsed, sources)
	if annotated[0].Repo != RepoCore {
		t.Errorf("linux repo = %q, want core", annotated[0].Repo)
	}
	if annotated[1].Repo != "" {
		t.Errorf("unknown-pkg repo = %q, want empty", annotated[1].Repo)
	}
}
