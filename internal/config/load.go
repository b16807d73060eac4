package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvPendingFile = "MDTODO_TODO_FILE"
	EnvDoneFile    = "MDTODO_DONE_FILE"
	EnvLogLevel    = "MDTODO_LOG_LEVEL"
	EnvLogFormat   = "MDTODO_LOG_FORMAT"
	EnvMirrorList  = "MDTODO_MIRROR_LIST"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// fileSettings mirrors config.toml.
type fileSettings struct {
	TodoFile   string `toml:"todo_file"`
	DoneFile   string `toml:"done_file"`
	MirrorList string `toml:"mirror_list"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

// Load builds a Config from, in increasing priority:
// 1. Defaults
// 2. config.toml in the config directory
// 3. .env in the working directory and the process environment
//
// CLI flags are applied by the caller afterwards.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadFile(cfg.ConfigFilePath()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigFilePath(), err)
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}
	cfg.loadEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var fsettings fileSettings
	if _, err := toml.DecodeFile(path, &fsettings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	setIfNotEmpty(&c.PendingPath, fsettings.TodoFile)
	setIfNotEmpty(&c.DonePath, fsettings.DoneFile)
	setIfNotEmpty(&c.MirrorList, fsettings.MirrorList)
	setIfNotEmpty(&c.LogLevel, strings.ToLower(fsettings.LogLevel))
	setIfNotEmpty(&c.LogFormat, strings.ToLower(fsettings.LogFormat))
	return nil
}

// loadDotEnv populates unset environment variables from a .env file.
// Variables already present in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Config) loadEnv() {
	setIfNotEmpty(&c.PendingPath, os.Getenv(EnvPendingFile))
	setIfNotEmpty(&c.DonePath, os.Getenv(EnvDoneFile))
	setIfNotEmpty(&c.MirrorList, os.Getenv(EnvMirrorList))
	setIfNotEmpty(&c.LogLevel, strings.ToLower(os.Getenv(EnvLogLevel)))
	setIfNotEmpty(&c.LogFormat, strings.ToLower(os.Getenv(EnvLogFormat)))
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
