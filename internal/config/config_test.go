package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercehq/shopctl/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOPCTL_CONFIG", filepath.Join(t.TempDir(), "missing", "config.yaml"))
	t.Setenv("SHOPCTL_SERVER", "")

	_, err := Load()
	// Explicit config path that does not exist is an error.
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigNotFound))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server_url: https://shop.example.com\ntimeout: 5s\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SHOPCTL_CONFIG", path)
	t.Setenv("SHOPCTL_SERVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset fields fall back to defaults.
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: https://file.example.com\n"), 0o644))

	t.Setenv("SHOPCTL_CONFIG", path)
	t.Setenv("SHOPCTL_SERVER", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.ServerURL)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [not, a, string\n"), 0o644))

	t.Setenv("SHOPCTL_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigUnmarshal))
}

func TestAPIBaseURL(t *testing.T) {
	cfg := Config{ServerURL: "https://shop.example.com"}
	assert.Equal(t, "https://shop.example.com/api", cfg.APIBaseURL())
}

func TestTokenPath(t *testing.T) {
	cfg := Config{StateDir: "/tmp/state"}
	assert.Equal(t, filepath.Join("/tmp/state", "auth_token.json"), cfg.TokenPath())
}
