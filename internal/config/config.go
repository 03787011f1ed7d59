package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
)

type Config struct {
	VaultPath       string              `toml:"vault_path"`
	DefaultTimezone string              `toml:"default_timezone"`
	SuggestionLimit int                 `toml:"suggestion_limit"`
	ListenAddr      string              `toml:"listen_addr"`
	Statuses        []model.StatusDef   `toml:"statuses"`
	Priorities      []model.PriorityDef `toml:"priorities"`
}

var overridePath string

// SetOverridePath forces subsequent Load calls to read from path.
func SetOverridePath(path string) {
	overridePath = path
}

func DefaultConfig() *Config {
	return &Config{
		VaultPath:       filepath.Join(DataDir(), "vault"),
		DefaultTimezone: "UTC",
		SuggestionLimit: 10,
		ListenAddr:      "127.0.0.1:8734",
		Statuses: []model.StatusDef{
			{Value: "open", Label: "Open", Color: "blue", Order: 1},
			{Value: "in-progress", Label: "In Progress", Color: "yellow", Order: 2},
			{Value: "done", Label: "Done", Color: "green", Order: 3, IsComplete: true},
		},
		Priorities: []model.PriorityDef{
			{Value: "normal", Label: "Normal", Color: "blue", Weight: 1},
			{Value: "high", Label: "High", Color: "yellow", Weight: 2},
			{Value: "urgent", Label: "Urgent", Color: "red", Weight: 3},
		},
	}
}

// Location resolves the configured default timezone. Validation at load
// time guarantees the name parses; any residual failure falls back to UTC.
func (c *Config) Location() *time.Location {
	if c.DefaultTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Load() (*Config, error) {
	if overridePath != "" {
		return LoadFrom(overridePath)
	}
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// User catalogs replace the defaults entirely rather than merging.
	onDisk := &Config{}
	md, err := toml.DecodeFile(path, onDisk)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		fmt.Fprintf(os.Stderr, "Warning: unknown config key '%s'\n", key)
	}

	if onDisk.VaultPath != "" {
		cfg.VaultPath = onDisk.VaultPath
	}
	if onDisk.DefaultTimezone != "" {
		cfg.DefaultTimezone = onDisk.DefaultTimezone
	}
	if onDisk.SuggestionLimit > 0 {
		cfg.SuggestionLimit = onDisk.SuggestionLimit
	}
	if onDisk.ListenAddr != "" {
		cfg.ListenAddr = onDisk.ListenAddr
	}
	if len(onDisk.Statuses) > 0 {
		cfg.Statuses = onDisk.Statuses
	}
	if len(onDisk.Priorities) > 0 {
		cfg.Priorities = onDisk.Priorities
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DefaultTimezone != "" {
		if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
			return fmt.Errorf("invalid default_timezone '%s': %w", cfg.DefaultTimezone, err)
		}
	}

	seen := map[string]bool{}
	for _, s := range cfg.Statuses {
		if s.Value == "" {
			return fmt.Errorf("status entry with empty value")
		}
		if seen[s.Value] {
			return fmt.Errorf("duplicate status value '%s'", s.Value)
		}
		seen[s.Value] = true
	}

	seen = map[string]bool{}
	for _, p := range cfg.Priorities {
		if p.Value == "" {
			return fmt.Errorf("priority entry with empty value")
		}
		if seen[p.Value] {
			return fmt.Errorf("duplicate priority value '%s'", p.Value)
		}
		seen[p.Value] = true
	}

	return nil
}

func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasknotes")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tasknotes")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasknotes")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tasknotes")
}
