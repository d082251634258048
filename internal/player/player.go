// Package player wraps a media handle with the play, replay and speed
// controls used by the recording playback widget.
package player

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reviewaudio/internal/media"
	"github.com/llehouerou/reviewaudio/internal/prefs"
	"github.com/llehouerou/reviewaudio/internal/speed"
)

// Player owns one media handle for its whole life. Close returns it to
// idle so it can be played again.
//
// Owner calls are expected from a single goroutine. Media callbacks arrive
// on other goroutines, so every field they touch is atomic. Each Play and
// Close bumps a generation; callbacks from an older generation are dropped.
type Player struct {
	media media.Handle
	prefs prefs.Store

	playing   atomic.Bool
	prepared  atomic.Bool
	preparing atomic.Bool
	speedBits atomic.Uint64
	gen       atomic.Uint64

	onCompletion atomic.Pointer[func()]
	onError      atomic.Pointer[func(error)]
}

// New creates a player around h, reading the speed preference from store.
func New(h media.Handle, store prefs.Store) *Player {
	p := &Player{media: h, prefs: store}
	p.storeSpeed(1.0)
	return p
}

// Play resets any previous playback and prepares path asynchronously.
// Once prepared, playback starts at the stored speed and onPrepared runs
// on the media goroutine. Open and decode failures are logged, leave the
// player idle and go to the OnError callback; onPrepared is not called.
func (p *Player) Play(path string, onPrepared func()) {
	log.Info("play", "path", path, "playing", p.IsPlaying())

	p.media.Reset()
	p.prepared.Store(false)
	p.playing.Store(false)
	p.preparing.Store(false)
	gen := p.gen.Add(1)

	p.storeSpeed(speed.FromPrefs(p.prefs))

	p.media.SetOnPrepared(func() { p.handlePrepared(gen, onPrepared) })
	p.media.SetOnCompletion(func() { p.handleCompletion(gen) })
	p.media.SetOnError(func(err error) { p.handleError(gen, path, err) })

	if err := p.media.SetDataSource(path); err != nil {
		log.Warn("could not play file", "path", path, "err", err)
		p.Close()
		p.reportError(err)
		return
	}

	p.preparing.Store(true)
	p.media.PrepareAsync()
}

func (p *Player) handlePrepared(gen uint64, onPrepared func()) {
	if gen != p.gen.Load() {
		log.Debug("ignoring stale preparation", "generation", gen)
		return
	}

	p.preparing.Store(false)
	p.prepared.Store(true)

	s := p.PlaybackSpeed()
	if err := p.media.SetPlaybackParams(media.Params{Speed: s, Pitch: 1.0}); err != nil {
		log.Warn("could not apply playback speed", "speed", s, "err", err)
	}
	p.media.Start()

	// Close may have raced the start
	if gen != p.gen.Load() {
		return
	}
	p.playing.Store(true)

	if onPrepared != nil {
		onPrepared()
	}
}

func (p *Player) handleCompletion(gen uint64) {
	if gen != p.gen.Load() {
		return
	}
	p.playing.Store(false)
	if fn := p.onCompletion.Load(); fn != nil {
		(*fn)()
	}
}

func (p *Player) handleError(gen uint64, path string, err error) {
	if gen != p.gen.Load() {
		return
	}
	log.Warn("could not prepare file", "path", path, "err", err)
	p.Close()
	p.reportError(err)
}

func (p *Player) reportError(err error) {
	if fn := p.onError.Load(); fn != nil {
		(*fn)(err)
	}
}

// Replay restarts prepared audio from the beginning. No-op otherwise.
func (p *Player) Replay() {
	log.Info("replay", "playing", p.IsPlaying(), "prepared", p.IsPrepared())
	if !p.prepared.Load() {
		return
	}
	if err := p.media.SeekTo(0); err != nil {
		log.Warn("could not seek to start", "err", err)
	}
	p.media.Start()
	p.playing.Store(true)
}

// SetPlaybackSpeed changes the speed of the playing audio, clamped to
// [speed.MinPlayback, speed.MaxPlayback] with pitch unchanged. It does
// nothing unless audio is playing. Failures are logged.
func (p *Player) SetPlaybackSpeed(v float64) {
	if !p.playing.Load() {
		return
	}

	clamped := speed.ClampPlayback(v)
	p.storeSpeed(clamped)

	if err := p.media.SetPlaybackParams(media.Params{Speed: clamped, Pitch: 1.0}); err != nil {
		log.Warn("failed to set playback speed", "speed", clamped, "err", err)
		return
	}
	log.Info("applied playback speed", "speed", clamped)
}

// Close stops playback and resets the handle. It is safe to call at any
// time and any number of times; it always returns nil.
func (p *Player) Close() error {
	log.Info("close", "playing", p.IsPlaying(), "prepared", p.IsPrepared())
	p.gen.Add(1)
	p.media.Reset()
	p.prepared.Store(false)
	p.playing.Store(false)
	p.preparing.Store(false)
	return nil
}

// OnCompletion sets the callback run when playback reaches the end.
// It runs on the media goroutine after IsPlaying has become false.
func (p *Player) OnCompletion(fn func()) {
	if fn == nil {
		p.onCompletion.Store(nil)
		return
	}
	p.onCompletion.Store(&fn)
}

// OnError sets the callback run after a Play fails to open or prepare
// its file. The player is already idle when it runs.
func (p *Player) OnError(fn func(error)) {
	if fn == nil {
		p.onError.Store(nil)
		return
	}
	p.onError.Store(&fn)
}

func (p *Player) IsPlaying() bool  { return p.playing.Load() }
func (p *Player) IsPrepared() bool { return p.prepared.Load() }

// State reports the player state derived from its flags.
func (p *Player) State() State {
	switch {
	case p.playing.Load():
		return Playing
	case p.prepared.Load():
		return Ready
	case p.preparing.Load():
		return Preparing
	default:
		return Idle
	}
}

// Duration returns the prepared audio length, or 0 before preparation.
func (p *Player) Duration() time.Duration {
	if !p.prepared.Load() {
		return 0
	}
	return p.media.Duration()
}

// Position returns the playback position, or 0 before preparation.
func (p *Player) Position() time.Duration {
	if !p.prepared.Load() {
		return 0
	}
	return p.media.CurrentPosition()
}

// PlaybackSpeed returns the last loaded or applied speed.
func (p *Player) PlaybackSpeed() float64 {
	return math.Float64frombits(p.speedBits.Load())
}

func (p *Player) storeSpeed(v float64) {
	p.speedBits.Store(math.Float64bits(v))
}
