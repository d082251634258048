// Package prefs stores user preferences as string key-value pairs.
package prefs

import (
	"fmt"

	"github.com/llehouerou/reviewaudio/internal/config"
)

// KeyAudioPlaybackSpeed holds the playback speed multiplier, e.g. "1.25".
const KeyAudioPlaybackSpeed = "audio_playback_speed"

// Store is a key-value string store.
// GetString returns def when the key is absent or cannot be read.
type Store interface {
	GetString(key, def string) string
	PutString(key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Open returns the store selected by the configuration.
// An empty backend selects SQLite.
func Open(cfg config.PrefsConfig) (Store, error) {
	switch cfg.Backend {
	case "", BackendSQLite:
		return OpenSQLite(cfg.Path)
	case BackendBolt:
		return OpenBolt(cfg.Path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", cfg.Backend)
	}
}
