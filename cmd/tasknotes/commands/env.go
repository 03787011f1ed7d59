package commands

import (
	"fmt"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

var vaultOverride string

// SetVaultOverride points every command at dir instead of the configured
// vault path. Used by the --vault flag and by tests.
func SetVaultOverride(dir string) {
	vaultOverride = dir
}

// loadEnv resolves config and opens the vault all commands operate on.
func loadEnv() (*config.Config, *vault.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	dir := cfg.VaultPath
	if vaultOverride != "" {
		dir = vaultOverride
	}
	store, err := vault.Open(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vault at %s: %w", dir, err)
	}
	return cfg, store, nil
}
