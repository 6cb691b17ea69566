package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load away from the developer's real config and environment
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"ROCKETLEAGUE_API_TOKEN",
		"ROCKETLEAGUE_API_KEY",
		"ROCKETLEAGUE_API_BASE_URL",
		"ROCKETLEAGUE_LOGGING_LEVEL",
		"ROCKETLEAGUE_OUTPUT_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.rocketleague.com", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Empty(t, cfg.API.Token)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Debug.Request)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
api:
  token: file-token
  timeout: 5s
debug:
  request: true
logging:
  level: debug
output:
  format: table
  compact: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.API.Token)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Debug.Request)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.True(t, cfg.Output.Compact)
	assert.Equal(t, path, cfg.File)
}

func TestLoadFindsFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "api:\n  token: cwd-token\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cwd-token", cfg.API.Token)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("prefixed variables", func(t *testing.T) {
		isolate(t)
		t.Setenv("ROCKETLEAGUE_API_TOKEN", "env-token")
		t.Setenv("ROCKETLEAGUE_OUTPUT_FORMAT", "table")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.API.Token)
		assert.Equal(t, "table", cfg.Output.Format)
	})

	t.Run("legacy token variable", func(t *testing.T) {
		isolate(t)
		t.Setenv("ROCKETLEAGUE_API_KEY", "legacy-token")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "legacy-token", cfg.API.Token)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := isolate(t)
		path := writeConfig(t, dir, "api:\n  token: file-token\n")
		t.Setenv("ROCKETLEAGUE_API_TOKEN", "env-token")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.API.Token)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "https://api.rocketleague.com", Timeout: time.Second},
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Output:  OutputConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "api.rocketleague.com" },
			wantErr: "api.base_url must be an absolute URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "csv" },
			wantErr: "invalid output format: csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
