// Package config loads client configuration for shopctl.
//
// Configuration is resolved from three sources, highest precedence first:
//  1. Command-line flags (applied by the caller after Load)
//  2. Environment variables (SHOPCTL_SERVER, SHOPCTL_CONFIG)
//  3. Config file (~/.shopctl/config.yaml)
//
// All fields have working defaults so a config file is never required.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/commercehq/shopctl/internal/errors"
)

const (
	// DefaultServerURL is the API server used when nothing else is configured
	DefaultServerURL = "http://localhost:3000"

	// DefaultTimeout is the per-request timeout for API calls
	DefaultTimeout = 30 * time.Second

	configDirName  = ".shopctl"
	configFileName = "config.yaml"
)

// Config holds client configuration
type Config struct {
	// ServerURL is the API server base, without the /api suffix
	ServerURL string `yaml:"server_url"`

	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`

	// StateDir is where durable client state (the auth token) lives
	StateDir string `yaml:"state_dir"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogFormat is one of text, json
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file or overrides exist
func Default() Config {
	return Config{
		ServerURL: DefaultServerURL,
		Timeout:   DefaultTimeout,
		StateDir:  defaultStateDir(),
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

func defaultStateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(homeDir, configDirName)
}

// Load resolves configuration from the config file and environment.
//
// A missing config file is not an error; defaults apply. An unreadable or
// malformed file is an error so misconfiguration does not silently
// fall back to localhost.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("SHOPCTL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(defaultStateDir(), configFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file not found: %s", path), err)
		}
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read config file: %s", path), err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeConfigUnmarshal,
				fmt.Sprintf("invalid config file: %s", path), err).
				WithSuggestion("Check the YAML syntax of the config file")
		}
	}

	if server := os.Getenv("SHOPCTL_SERVER"); server != "" {
		cfg.ServerURL = server
	}

	return cfg.normalized()
}

// normalized fills zero values back in with defaults and validates the result
func (c Config) normalized() (Config, error) {
	def := Default()

	if c.ServerURL == "" {
		c.ServerURL = def.ServerURL
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}

	return c, nil
}

// APIBaseURL returns the full base path API requests are issued under
func (c Config) APIBaseURL() string {
	return c.ServerURL + "/api"
}

// TokenPath returns the location of the persisted auth token
func (c Config) TokenPath() string {
	return filepath.Join(c.StateDir, "auth_token.json")
}
