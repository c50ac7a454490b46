// Package config resolves where the catalog lives and how chatty the binary
// is. Values come from built-in defaults, then an optional YAML file, then
// APPSHELF_* environment variables; command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default file names inside the configuration directory.
const (
	DatabaseFile = "appshelf.db"
	KVStoreFile  = "localstorage.db"
	ConfigFile   = "config.yaml"
)

// Config holds the resolved settings.
type Config struct {
	// Database is the SQLite file holding the catalog.
	Database string `yaml:"database" env:"APPSHELF_DB"`
	// KVStore is the bbolt file used as the last-resort store.
	KVStore string `yaml:"kvstore" env:"APPSHELF_KV"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"APPSHELF_LOG_LEVEL"`
}

// Dir returns the default configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "appshelf"), nil
}

// Default returns the settings used when nothing overrides them.
func Default() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Database: filepath.Join(dir, DatabaseFile),
		KVStore:  filepath.Join(dir, KVStoreFile),
		LogLevel: "info",
	}, nil
}

// Load resolves the configuration. path names a YAML file; an empty path
// means the default config.yaml, which may be absent. A file named
// explicitly must exist.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		path = filepath.Join(dir, ConfigFile)
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// EnsureDirs creates the parent directories of the database and key/value
// files.
func (c Config) EnsureDirs() error {
	for _, p := range []string{c.Database, c.KVStore} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}
