// Package config handles application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/utils"
)

const appName = "todolist"

// StorageConfig selects where the collection lives
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"` // json or sqlite
	Dir     string `yaml:"dir" toml:"dir"`
}

// ExportConfig holds export settings
type ExportConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // where CSV/JSON downloads are written
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig `yaml:"storage" toml:"storage"`
	Export   ExportConfig  `yaml:"export" toml:"export"`
	Timezone string        `yaml:"timezone" toml:"timezone"` // IANA name; empty means the system zone
	Theme    string        `yaml:"theme" toml:"theme"`       // classic, neon or mono
	Log      LogConfig     `yaml:"log" toml:"log"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "json",
			Dir:     GetDataDir(),
		},
		Export: ExportConfig{Dir: "."},
		Theme:  "classic",
		Log:    LogConfig{Level: "warn"},
	}
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load reads configuration from path, or from DefaultPath if empty.
// A missing file yields the defaults. Files ending in .toml are decoded as
// TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and the timezone
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return utils.ErrInvalidBackend(c.Storage.Backend)
	}
	switch strings.ToLower(c.Theme) {
	case "", "classic", "neon", "mono":
	default:
		return utils.WrapWithSuggestion(
			fmt.Errorf("unknown theme: %s", c.Theme),
			"Valid options: classic, neon, mono",
		)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone, defaulting to time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, utils.WrapWithSuggestion(
			fmt.Errorf("invalid timezone %q: %w", c.Timezone, err),
			"Use an IANA zone name such as Europe/Paris, or leave timezone empty",
		)
	}
	return loc, nil
}

// GetConfigDir returns the XDG config directory for the app
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".config", appName)
}

// GetDataDir returns the XDG data directory for the app
func GetDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
