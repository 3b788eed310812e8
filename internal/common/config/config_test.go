package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.IntervalSecs != 60 {
		t.Errorf("IntervalSecs = %d, want 60", cfg.IntervalSecs)
	}
	if cfg.OnlineCheckPeriod != 10 {
		t.Errorf("OnlineCheckPeriod = %d, want 10", cfg.OnlineCheckPeriod)
	}
	if cfg.TimeoutSecs != 120 {
		t.Errorf("TimeoutSecs = %d, want 120", cfg.TimeoutSecs)
	}
	if len(cfg.DevelSuffixes) != 1 || cfg.DevelSuffixes[0] != "-git" {
		t.Errorf("DevelSuffixes = %v, want [-git]", cfg.DevelSuffixes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IntervalSecs != 60 {
		t.Errorf("IntervalSecs = %d, want default 60", cfg.IntervalSecs)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `interval_secs: 30
online_check_period: 5
devel_suffixes:
  - "-git"
  - "-svn"
exclude:
  - devel
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval() != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Interval())
	}
	if cfg.OnlineCheckPeriod != 5 {
		t.Errorf("OnlineCheckPeriod = %d, want 5", cfg.OnlineCheckPeriod)
	}
	// Unset fields keep their defaults.
	if cfg.Timeout() != 120*time.Second {
		t.Errorf("Timeout = %v, want default 120s", cfg.Timeout())
	}
	if len(cfg.DevelSuffixes) != 2 {
		t.Errorf("DevelSuffixes = %v", cfg.DevelSuffixes)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "devel" {
		t.Errorf("Exclude = %v, want [devel]", cfg.Exclude)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("interval_secs: [not an int\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); !errors.Is(err, ErrConfigInvalidShape) {
		t.Errorf("error = %v, want ErrConfigInvalidShape", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero interval", func(c *Config) { c.IntervalSecs = 0 }, ErrInvalidInterval},
		{"negative period", func(c *Config) { c.OnlineCheckPeriod = -1 }, ErrInvalidPeriod},
		{"zero timeout", func(c *Config) { c.TimeoutSecs = 0 }, ErrInvalidTimeout},
		{"unknown exclude", func(c *Config) { c.Exclude = []string{"flatpak"} }, ErrUnknownSource},
		{"known excludes", func(c *Config) { c.Exclude = []string{"pacman", "aur", "devel"} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
