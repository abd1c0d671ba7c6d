// Package config loads monlayout's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/monlayout/config.toml (falling back to
// ~/.config/monlayout/config.toml). A missing file is not an error: every key
// has a default. Command-line flags override file values.
//
// Example:
//
//	xrandr       = "/usr/bin/xrandr"
//	edid_decode  = "edid-decode"
//	probe        = "randr"
//	settle_delay = "1500ms"
//	confirm      = true
//	cache        = false
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/monlayout/pkg/errors"
)

const (
	// AppName is used for the config and cache directory names.
	AppName = "monlayout"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Duration is a time.Duration that decodes from TOML strings like "2s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the user-tunable settings.
type Config struct {
	// Xrandr is the xrandr executable.
	Xrandr string `toml:"xrandr"`

	// EDIDDecode is the edid-decode executable used to name monitors.
	EDIDDecode string `toml:"edid_decode"`

	// Probe selects how monitors are discovered: "xrandr" or "randr".
	Probe string `toml:"probe"`

	// SettleDelay is the pause between consecutive xrandr invocations.
	SettleDelay Duration `toml:"settle_delay"`

	// Confirm asks before applying a layout.
	Confirm bool `toml:"confirm"`

	// Cache enables the monitor name cache.
	Cache bool `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Xrandr:      "xrandr",
		EDIDDecode:  "edid-decode",
		Probe:       errors.ProbeXrandr,
		SettleDelay: Duration{2 * time.Second},
		Cache:       true,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := errors.ValidateBinary(c.Xrandr); err != nil {
		return fmt.Errorf("xrandr: %w", err)
	}
	if err := errors.ValidateBinary(c.EDIDDecode); err != nil {
		return fmt.Errorf("edid_decode: %w", err)
	}
	if err := errors.ValidateProbe(c.Probe); err != nil {
		return err
	}
	return errors.ValidateSettleDelay(c.SettleDelay.Duration)
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dir returns the config directory using the XDG standard (~/.config/monlayout/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the cache directory using the XDG standard (~/.cache/monlayout/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
