package player

import "time"

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(path string, onPrepared func())
	Replay()
	SetPlaybackSpeed(speed float64)
	Close() error
	OnCompletion(fn func())
	OnError(fn func(error))
	IsPlaying() bool
	IsPrepared() bool
	State() State
	Duration() time.Duration
	Position() time.Duration
	PlaybackSpeed() float64
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
