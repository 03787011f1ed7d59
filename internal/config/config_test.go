package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

func TestMissingFileDefaults(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("expected no error for missing config, got: %v", err)
	}
	if cfg.DefaultTimezone != "UTC" {
		t.Errorf("expected default timezone 'UTC', got '%s'", cfg.DefaultTimezone)
	}
	if cfg.SuggestionLimit != 10 {
		t.Errorf("expected default suggestion_limit 10, got %d", cfg.SuggestionLimit)
	}
	if model.DefaultStatus(cfg.Statuses) != "open" {
		t.Errorf("expected default status 'open', got '%s'", model.DefaultStatus(cfg.Statuses))
	}
	if model.DefaultPriority(cfg.Priorities) != "normal" {
		t.Errorf("expected default priority 'normal', got '%s'", model.DefaultPriority(cfg.Priorities))
	}
}

func TestPartialConfigMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	_ = os.WriteFile(path, []byte(`default_timezone = "America/New_York"`), 0644)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTimezone != "America/New_York" {
		t.Errorf("expected timezone override, got '%s'", cfg.DefaultTimezone)
	}
	if len(cfg.Statuses) != 3 {
		t.Errorf("expected default status catalog preserved, got %d entries", len(cfg.Statuses))
	}
}

func TestCatalogReplacesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	_ = os.WriteFile(path, []byte(`
[[statuses]]
value = "todo"
label = "To Do"
order = 5

[[statuses]]
value = "someday"
label = "Someday"
order = 1
`), 0644)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Statuses) != 2 {
		t.Fatalf("expected user catalog to replace defaults, got %d entries", len(cfg.Statuses))
	}
	// lowest order wins
	if got := model.DefaultStatus(cfg.Statuses); got != "someday" {
		t.Errorf("expected default status 'someday', got '%s'", got)
	}
}

func TestDuplicateStatusRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	_ = os.WriteFile(path, []byte(`
[[statuses]]
value = "open"

[[statuses]]
value = "open"
`), 0644)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for duplicate status value")
	}
}

func TestInvalidTOMLSyntax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	_ = os.WriteFile(path, []byte(`not valid toml [[[`), 0644)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"", "UTC"},
		{"UTC", "UTC"},
		{"America/New_York", "America/New_York"},
		{"Not/AZone", "UTC"},
	}
	for _, tt := range tests {
		cfg := &Config{DefaultTimezone: tt.tz}
		if got := cfg.Location().String(); got != tt.want {
			t.Errorf("Location() with tz %q = %q, want %q", tt.tz, got, tt.want)
		}
	}
}

func TestInvalidTimezone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	_ = os.WriteFile(path, []byte(`default_timezone = "Not/AZone"`), 0644)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}
