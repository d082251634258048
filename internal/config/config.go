package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that override file values.
const (
	EnvLogLevel     = "REVIEWAUDIO_LOG_LEVEL"
	EnvLogFile      = "REVIEWAUDIO_LOG_FILE"
	EnvPrefsBackend = "REVIEWAUDIO_PREFS_BACKEND"
	EnvPrefsPath    = "REVIEWAUDIO_PREFS_PATH"
)

const defaultTickMS = 100

type Config struct {
	Icons    string `koanf:"icons"`     // "nerd", "unicode", or "none"
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `koanf:"log_file"`  // empty means XDG state dir

	Prefs    PrefsConfig    `koanf:"prefs"`
	Progress ProgressConfig `koanf:"progress"`
	Theme    ThemeConfig    `koanf:"theme"`
}

// PrefsConfig selects where preferences are stored.
type PrefsConfig struct {
	Backend string `koanf:"backend"` // "sqlite" (default), "bolt", or "memory"
	Path    string `koanf:"path"`    // empty means XDG data dir
}

// ProgressConfig controls how often the progress bar is refreshed.
type ProgressConfig struct {
	TickMS int `koanf:"tick_ms"`
}

// ThemeConfig overrides widget colors with "#rrggbb" values.
type ThemeConfig struct {
	Accent     string `koanf:"accent"`
	Speed      string `koanf:"speed"`
	Background string `koanf:"background"`
}

// Load reads the default config files, then extra files in order (last wins).
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom reads the given config files in order, skipping missing ones,
// then applies .env and environment overrides.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		LogLevel: "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Prefs.Path = expandPath(cfg.Prefs.Path)
	cfg.Prefs.Backend = strings.ToLower(strings.TrimSpace(cfg.Prefs.Backend))

	return cfg, nil
}

// applyEnv loads ./.env (if present) and overrides fields from the environment.
// Variables already set in the process environment take precedence over .env.
func applyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvPrefsBackend); v != "" {
		cfg.Prefs.Backend = v
	}
	if v := os.Getenv(EnvPrefsPath); v != "" {
		cfg.Prefs.Path = v
	}
	return nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reviewaudio/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reviewaudio", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetProgressConfig returns the progress configuration with defaults applied.
func (c *Config) GetProgressConfig() ProgressConfig {
	cfg := c.Progress
	if cfg.TickMS <= 0 || cfg.TickMS > 1000 {
		cfg.TickMS = defaultTickMS
	}
	return cfg
}
