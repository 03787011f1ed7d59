package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "tasknotes"
	keyringUser    = "api-token"
)

// TokenStore keeps the API bearer token in the OS keyring, falling back to a
// file when no keyring is available (headless machines, CI).
type TokenStore struct {
	// FallbackPath is where the token lands when the keyring is unusable.
	FallbackPath string
}

// NewTokenStore creates a token store with a fallback file under dir.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{FallbackPath: filepath.Join(dir, "api-token")}
}

// Get returns the stored token, preferring the keyring and migrating a
// file-stored token into the keyring when possible.
func (s *TokenStore) Get() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil {
		return token, nil
	}

	data, ferr := os.ReadFile(s.FallbackPath)
	if ferr != nil {
		return "", fmt.Errorf("no API token stored — run: tasknotes serve --new-token")
	}
	token = strings.TrimSpace(string(data))
	_ = keyring.Set(keyringService, keyringUser, token)
	return token, nil
}

// Set stores the token, writing the fallback file when the keyring fails.
func (s *TokenStore) Set(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.FallbackPath), 0700); err != nil {
		return fmt.Errorf("failed to store API token: %w", err)
	}
	return os.WriteFile(s.FallbackPath, []byte(token+"\n"), 0600)
}

// Delete removes the token from both the keyring and the fallback file.
func (s *TokenStore) Delete() error {
	kerr := keyring.Delete(keyringService, keyringUser)
	ferr := os.Remove(s.FallbackPath)
	if kerr != nil && ferr != nil && !os.IsNotExist(ferr) {
		return ferr
	}
	return nil
}

// GenerateToken creates a fresh random bearer token.
func GenerateToken() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
