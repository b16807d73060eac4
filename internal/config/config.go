// Package config handles the config directory, task file paths, and the
// layered settings sources.
package config

import (
	"os"
	"path/filepath"

	"mdtodo/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "mdtodo"

	// ConfigFile is the optional TOML settings file in the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultMirrorList is the Google Tasks list that push publishes to.
	DefaultMirrorList = "mdtodo"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// PendingPath is the pending task file.
	PendingPath string

	// DonePath is the done task file.
	DonePath string

	// MirrorList is the remote list name used by push.
	MirrorList string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is one of text, json, logfmt.
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with defaults and the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/mdtodo or $HOME/.config/mdtodo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:         dir,
		PendingPath: store.DefaultPendingFile,
		DonePath:    store.DefaultDoneFile,
		MirrorList:  DefaultMirrorList,
		LogLevel:    "info",
		LogFormat:   "text",
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFilePath returns the path to the TOML settings file.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
