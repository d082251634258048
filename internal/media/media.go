// Package media provides the playback handle that the player drives:
// open a file, prepare it off the calling goroutine, then start, seek,
// reset and adjust its speed.
package media

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var (
	ErrUnsupportedFormat = errors.New("media: unsupported format")
	ErrNoDataSource      = errors.New("media: no data source")
	ErrNotPrepared       = errors.New("media: not prepared")
	ErrInvalidSpeed      = errors.New("media: speed must be positive")
	ErrPitchUnsupported  = errors.New("media: only neutral pitch is supported")
)

// Supported file extensions.
const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

var supportedExts = []string{extMP3, extFLAC, extWAV}

// IsSupported reports whether path has an extension the handle can decode.
func IsSupported(path string) bool {
	return slices.Contains(supportedExts, strings.ToLower(filepath.Ext(path)))
}

// Params are the playback rate parameters. Pitch 1.0 keeps the original pitch.
type Params struct {
	Speed float64
	Pitch float64
}

// NeutralParams plays at normal speed and pitch.
var NeutralParams = Params{Speed: 1.0, Pitch: 1.0}

// Handle is a single media playback resource.
//
// Lifecycle:
//
//	Idle ──SetDataSource──▶ Initialized ──PrepareAsync──▶ Preparing
//	                                                         │ onPrepared
//	                                                         ▼
//	Idle ◀──────────────Reset (from any state)────────── Prepared ──Start──▶ Started
//	                                                         ▲                 │
//	                                                         └───onCompletion──┘
//
// Callbacks may run on goroutines other than the caller's.
type Handle interface {
	SetDataSource(path string) error
	SetOnPrepared(fn func())
	SetOnCompletion(fn func())
	SetOnError(fn func(error))
	PrepareAsync()
	Start()
	SeekTo(pos time.Duration) error
	Reset()
	Duration() time.Duration
	CurrentPosition() time.Duration
	PlaybackParams() Params
	SetPlaybackParams(p Params) error
}
