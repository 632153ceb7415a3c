package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidDuration is returned for non-positive durations.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidLogLevel is returned for an unknown log level name.
	ErrInvalidLogLevel = errors.New("unknown log level")
)

// Duration is a time.Duration written as "30m" or "1h30m" in JSON and in
// environment variables.
type Duration time.Duration

func (d Duration) Seconds() int64 { return int64(time.Duration(d) / time.Second) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the root configuration for shelf, stored in ~/.shelf/config.json.
// The file supports single-line // comments for documentation purposes.
// Environment variables override file values.
type Config struct {
	// Home is the data directory holding config.json and the journal.
	Home string `json:"-" env:"SHELF_HOME"`

	Shelf    ShelfConfig `json:"shelf"`
	Timer    TimerConfig `json:"timer"`
	LogLevel string      `json:"log_level" env:"SHELF_LOG_LEVEL"`
}

// ShelfConfig holds the daily goal settings.
type ShelfConfig struct {
	// RequiredTime is the daily study time needed to place a book.
	RequiredTime Duration `json:"required_time" env:"SHELF_REQUIRED_TIME"`
	// ShowFailedBooks marks days whose sessions all failed.
	ShowFailedBooks bool `json:"show_failed_books" env:"SHELF_SHOW_FAILED_BOOKS"`
}

// TimerConfig holds the focus timer settings.
type TimerConfig struct {
	DefaultTarget Duration   `json:"default_target" env:"SHELF_DEFAULT_TARGET"`
	Targets       []Duration `json:"targets"`
}

const (
	DefaultRequiredTime  = Duration(30 * time.Minute)
	DefaultTarget        = Duration(30 * time.Minute)
	DefaultLogLevel      = "warn"
	configFileName       = "config.json"
	defaultHomeDirectory = ".shelf"
)

// DefaultTargets are the timer goals offered when none are configured.
var DefaultTargets = []Duration{
	Duration(15 * time.Minute),
	Duration(30 * time.Minute),
	Duration(45 * time.Minute),
	Duration(time.Hour),
	Duration(90 * time.Minute),
	Duration(2 * time.Hour),
}

func defaultConfig() Config {
	return Config{
		Shelf:    ShelfConfig{RequiredTime: DefaultRequiredTime},
		Timer:    TimerConfig{DefaultTarget: DefaultTarget, Targets: append([]Duration(nil), DefaultTargets...)},
		LogLevel: DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// shelf configuration – ~/.shelf/config.json
//
// All settings are optional; the defaults below apply when a value is left
// out. Every setting can also be overridden with an environment variable.
{
  // ── Daily shelf ──────────────────────────────────────────────────────────
  "shelf": {
    // Study time a day needs before a book is placed on the shelf.
    // Env: SHELF_REQUIRED_TIME
    "required_time": "30m",

    // Mark days whose sessions all ended before their target with ✗.
    // Env: SHELF_SHOW_FAILED_BOOKS
    "show_failed_books": false
  },

  // ── Focus timer ──────────────────────────────────────────────────────────
  "timer": {
    // Goal preselected when the timer opens. Env: SHELF_DEFAULT_TARGET
    "default_target": "30m",

    // Goals offered with ←/→ in the timer.
    "targets": ["15m", "30m", "45m", "1h", "1h30m", "2h"]
  },

  // debug, info, warn or error. Env: SHELF_LOG_LEVEL
  "log_level": "warn"
}
`

// DefaultHome returns ~/.shelf.
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, defaultHomeDirectory), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load resolves the data directory from SHELF_HOME (default ~/.shelf) and
// reads its config.json.
func Load() (Config, error) {
	var loc struct {
		Home string `env:"SHELF_HOME"`
	}
	if err := env.Parse(&loc); err != nil {
		return defaultConfig(), fmt.Errorf("reading environment: %w", err)
	}
	home := loc.Home
	if home == "" {
		var err error
		if home, err = DefaultHome(); err != nil {
			return defaultConfig(), err
		}
	}
	return LoadFrom(home)
}

// LoadFrom reads home/config.json, creating it with annotated defaults on
// first run, and applies environment overrides on top.
func LoadFrom(home string) (Config, error) {
	cfg := defaultConfig()
	cfg.Home = home
	path := filepath.Join(home, configFileName)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			log.Warn("could not create config file", "path", path, "err", writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	cfg.Home = home
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// fillDefaults restores zero values a partial file left behind.
func (c *Config) fillDefaults() {
	if c.Shelf.RequiredTime == 0 {
		c.Shelf.RequiredTime = DefaultRequiredTime
	}
	if c.Timer.DefaultTarget == 0 {
		c.Timer.DefaultTarget = DefaultTarget
	}
	if len(c.Timer.Targets) == 0 {
		c.Timer.Targets = append([]Duration(nil), DefaultTargets...)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate rejects settings the rest of shelf cannot work with.
func (c Config) Validate() error {
	if c.Shelf.RequiredTime <= 0 {
		return fmt.Errorf("shelf.required_time %s: %w", c.Shelf.RequiredTime, ErrInvalidDuration)
	}
	if c.Timer.DefaultTarget <= 0 {
		return fmt.Errorf("timer.default_target %s: %w", c.Timer.DefaultTarget, ErrInvalidDuration)
	}
	for _, t := range c.Timer.Targets {
		if t <= 0 {
			return fmt.Errorf("timer.targets %s: %w", t, ErrInvalidDuration)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return nil
}

// TargetSeconds returns the configured timer goals in seconds.
func (c Config) TargetSeconds() []int64 {
	out := make([]int64, len(c.Timer.Targets))
	for i, t := range c.Timer.Targets {
		out[i] = t.Seconds()
	}
	return out
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
