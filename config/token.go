package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"
)

const (
	tokenKey           = "api-token"
	envKeyringPassword = envPrefix + "_KEYRING_PASSWORD"
	envKeyringBackend  = envPrefix + "_KEYRING_BACKEND"
)

// ErrNoToken is returned when no API token is stored in the keyring
var ErrNoToken = errors.New("no API token stored - run 'rlstats auth login' first")

// openKeyring opens the token store. Tests swap it for an in-memory keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring replaces the keyring opener and returns a restore func
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName:      appName,
		FileDir:          keyringFileDir(),
		FilePasswordFunc: keyringFilePassword,
	}

	if strings.EqualFold(os.Getenv(envKeyringBackend), "file") {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return cfg
}

func keyringFileDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appName, "keyring")
	}
	return filepath.Join(os.TempDir(), appName, "keyring")
}

func keyringFilePassword(prompt string) (string, error) {
	if password := os.Getenv(envKeyringPassword); password != "" {
		return password, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// LoadToken reads the API token from the OS keyring
func LoadToken() (string, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return "", fmt.Errorf("failed to open keyring: %w", err)
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return string(item.Data), nil
}

// SaveToken stores the API token in the OS keyring
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token must not be empty")
	}

	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}

	if err := ring.Set(keyring.Item{
		Key:         tokenKey,
		Data:        []byte(token),
		Label:       "Rocket League stats API token",
		Description: "API token used by " + appName,
	}); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// DeleteToken removes the stored API token. Removing a missing token is not an error.
func DeleteToken() error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}

	if err := ring.Remove(tokenKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	return nil
}

// ResolveToken returns the configured token, falling back to the keyring.
// A missing keyring entry yields an empty token; the API rejects such calls
// with 401.
func (c *Config) ResolveToken() (string, error) {
	if c.API.Token != "" {
		return c.API.Token, nil
	}

	token, err := LoadToken()
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	return token, err
}
