// Package config loads scroll-memory settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/scroll-memory/internal/model"
	"github.com/rcliao/scroll-memory/internal/scroll"
)

// DefaultOrigin scopes entries when no browser origin is configured.
const DefaultOrigin = "http://localhost"

// BrowserConfig describes the live calendar page used by probe.
type BrowserConfig struct {
	URL              string        `yaml:"url" env:"URL"`
	ScrollerSelector string        `yaml:"scroller_selector" env:"SCROLLER_SELECTOR"`
	NowSelector      string        `yaml:"now_selector" env:"NOW_SELECTOR"`
	ViewSelector     string        `yaml:"view_selector" env:"VIEW_SELECTOR"`
	Timeout          time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Config is the top-level configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means ~/.scroll-memory/scroll.db.
	DBPath string `yaml:"db_path" env:"DB"`

	// Origin scopes stored keys the way a browser scopes local storage.
	Origin string `yaml:"origin" env:"ORIGIN"`

	// Prefix is the storage key namespace.
	Prefix string `yaml:"prefix" env:"PREFIX"`

	// Debounce is the scroll quiet period before a capture.
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`

	// ScrollableViews marks extra view modes as scrollable.
	ScrollableViews []string `yaml:"scrollable_views" env:"SCROLLABLE_VIEWS" envSeparator:","`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Browser BrowserConfig `yaml:"browser" envPrefix:"BROWSER_"`
}

// envPrefix namespaces every environment override.
const envPrefix = "SCROLLMEM_"

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Origin:   DefaultOrigin,
		Prefix:   model.DefaultPrefix,
		Debounce: scroll.DefaultDebounce,
		LogLevel: "info",
	}
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Origin == "" {
		c.Origin = DefaultOrigin
	}
	if c.Prefix == "" {
		c.Prefix = model.DefaultPrefix
	}
	if c.Debounce <= 0 {
		c.Debounce = scroll.DefaultDebounce
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
}

// Classifier returns the view classification implied by the config.
func (c *Config) Classifier() model.Classifier {
	return model.NewClassifier(c.ScrollableViews...)
}

// Load reads path (when it exists) and then applies SCROLLMEM_* environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".scroll-memory-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// DefaultPath returns ~/.scroll-memory/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scroll-memory", "config.yaml")
}

// DefaultDBPath returns ~/.scroll-memory/scroll.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scroll-memory", "scroll.db")
}
