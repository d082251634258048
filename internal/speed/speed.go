// Package speed defines the playback speed choices and how stored
// speed preferences are read, cycled and clamped.
package speed

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reviewaudio/internal/prefs"
)

// Default is the speed used when nothing valid is stored.
const Default = "1.0"

// Bounds applied to speeds loaded from preferences.
const (
	MinPreferred = 0.5
	MaxPreferred = 2.5
)

// Bounds applied to speeds set during playback.
const (
	MinPlayback = 0.25
	MaxPlayback = 3.0
)

// Choices is the fixed cycle order of the speed button.
var Choices = []string{"0.5", "1.0", "1.25", "1.5", "1.75", "2.0", "2.25", "2.5"}

// Valid reports whether s is a positive decimal number.
func Valid(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v > 0
}

// Current returns the stored speed string, or Default when it is
// absent or malformed.
func Current(store prefs.Store) string {
	s := store.GetString(prefs.KeyAudioPlaybackSpeed, Default)
	if !Valid(s) {
		return Default
	}
	return s
}

// Next returns the choice following cur, wrapping after the last one.
// Values outside Choices are treated as Default.
func Next(cur string) string {
	idx := slices.Index(Choices, cur)
	if idx == -1 {
		idx = slices.Index(Choices, Default)
	}
	return Choices[(idx+1)%len(Choices)]
}

// Cycle advances the stored speed to its next choice and returns it.
// The new value is returned even when it could not be persisted.
func Cycle(store prefs.Store) (string, error) {
	next := Next(Current(store))
	return next, store.PutString(prefs.KeyAudioPlaybackSpeed, next)
}

// Label formats a speed for display, e.g. "1.25x".
func Label(s string) string {
	return s + "x"
}

// FromPrefs parses the stored speed for playback, falling back to 1.0
// and clamping to [MinPreferred, MaxPreferred].
func FromPrefs(store prefs.Store) float64 {
	s := store.GetString(prefs.KeyAudioPlaybackSpeed, Default)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		log.Warn("could not parse playback speed preference", "value", s, "err", err)
		v = 1.0
	}
	v = clamp(v, MinPreferred, MaxPreferred)
	log.Info("loaded playback speed from prefs", "speed", v)
	return v
}

// Parse converts a speed string to a ratio, returning 1.0 when s is not
// a positive number.
func Parse(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) {
		return 1.0
	}
	return v
}

// ClampPlayback limits v to [MinPlayback, MaxPlayback].
func ClampPlayback(v float64) float64 {
	return clamp(v, MinPlayback, MaxPlayback)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 1.0
	}
	return min(max(v, lo), hi)
}
