// Package config loads CLI defaults from an optional TOML file. Flags
// always win over the file; the file wins over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/redlinehq/redline"
)

// Config holds the persistable CLI settings. Every field maps to a flag of
// the same name.
type Config struct {
	// Style is the markup style name, e.g. "red-green" or "ghfm".
	Style string `toml:"style"`
	// InsClass and DelClass override the class names of the custom-css style.
	InsClass string `toml:"ins_class"`
	DelClass string `toml:"del_class"`
	// Color controls terminal coloring: "auto", "always", "never".
	Color string `toml:"color"`
	// Width is the wrap width for terminal output; 0 means no wrap.
	Width int `toml:"width"`
	// Format picks the output form: "auto", "markdown", "term", "html".
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Style:  "red-green",
		Color:  "auto",
		Format: "auto",
	}
}

// Path returns the default config file location, following the platform
// convention (e.g. ~/.config/redline/config.toml on Linux).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "redline", "config.toml"), nil
}

// Load reads the default config file. A missing file is not an error; the
// defaults come back unchanged.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path into a copy of the defaults, so absent keys keep
// their built-in values. The result is validated before it is returned.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	if _, err := redline.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color: must be auto, always, or never, got %q", c.Color)
	}
	switch c.Format {
	case "auto", "markdown", "term", "html":
	default:
		return fmt.Errorf("format: must be auto, markdown, term, or html, got %q", c.Format)
	}
	if c.Width < 0 {
		return fmt.Errorf("width: must be non-negative, got %d", c.Width)
	}
	return nil
}
