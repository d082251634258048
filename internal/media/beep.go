package media

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio sink a Beep handle plays into.
type Output interface {
	// Init prepares the sink for a stream at sr and returns the rate the
	// sink actually runs at. It may be called many times.
	Init(sr beep.SampleRate) (beep.SampleRate, error)
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput plays through the process-wide beep speaker, initialised
// once at the rate of the first file played.
type speakerOutput struct {
	once sync.Once
	rate beep.SampleRate
	err  error
}

var defaultOutput = &speakerOutput{}

// SpeakerOutput returns the shared speaker sink.
func SpeakerOutput() Output { return defaultOutput }

func (o *speakerOutput) Init(sr beep.SampleRate) (beep.SampleRate, error) {
	o.once.Do(func() {
		o.rate = sr
		o.err = speaker.Init(sr, sr.N(time.Second/10))
	})
	return o.rate, o.err
}

func (o *speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (o *speakerOutput) Lock()                   { speaker.Lock() }
func (o *speakerOutput) Unlock()                 { speaker.Unlock() }

// run is one queued pass of the stream through the output.
type run struct {
	ended atomic.Bool
}

// Beep is a Handle that decodes with beep and plays through an Output.
//
// Lock order: mu, then the output lock. Output callbacks never take mu
// synchronously because the output holds its own lock while streaming.
type Beep struct {
	out Output

	mu       sync.Mutex
	gen      uint64
	file     *os.File
	decoder  beep.StreamSeekCloser
	format   beep.Format
	stretch  *Stretcher
	ctrl     *beep.Ctrl
	current  *run
	prepared bool
	params   Params

	onPrepared   func()
	onCompletion func()
	onError      func(error)
}

// NewBeep creates a handle that plays through the shared speaker.
func NewBeep() *Beep {
	return NewBeepWithOutput(SpeakerOutput())
}

// NewBeepWithOutput creates a handle that plays through out.
func NewBeepWithOutput(out Output) *Beep {
	return &Beep{out: out, params: NeutralParams}
}

func (b *Beep) SetOnPrepared(fn func()) {
	b.mu.Lock()
	b.onPrepared = fn
	b.mu.Unlock()
}

func (b *Beep) SetOnCompletion(fn func()) {
	b.mu.Lock()
	b.onCompletion = fn
	b.mu.Unlock()
}

func (b *Beep) SetOnError(fn func(error)) {
	b.mu.Lock()
	b.onError = fn
	b.mu.Unlock()
}

// SetDataSource opens path. Any previous source is released first.
func (b *Beep) SetDataSource(path string) error {
	if !IsSupported(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.file = f
	return nil
}

// PrepareAsync decodes the data source on a new goroutine and reports
// through the prepared or error callback.
func (b *Beep) PrepareAsync() {
	b.mu.Lock()
	gen := b.gen
	f := b.file
	b.mu.Unlock()

	if f == nil {
		b.fail(gen, ErrNoDataSource)
		return
	}

	go b.prepare(gen, f)
}

func (b *Beep) prepare(gen uint64, f *os.File) {
	decoder, format, err := decodeFile(f)
	if err != nil {
		b.fail(gen, fmt.Errorf("decode %s: %w", f.Name(), err))
		return
	}

	rate, err := b.out.Init(format.SampleRate)
	if err != nil {
		decoder.Close()
		b.fail(gen, fmt.Errorf("init output: %w", err))
		return
	}

	var s beep.Streamer = decoder
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	stretch := NewStretcherForRate(s, rate)

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		log.Debug("discarding stale preparation", "file", f.Name())
		decoder.Close()
		return
	}
	b.decoder = decoder
	b.format = format
	b.stretch = stretch
	b.ctrl = &beep.Ctrl{Streamer: stretch, Paused: true}
	b.prepared = true
	b.params = NeutralParams
	cb := b.onPrepared
	b.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (b *Beep) fail(gen uint64, err error) {
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	cb := b.onError
	b.mu.Unlock()

	if cb != nil {
		go cb(err)
	}
}

// Start begins or resumes playback. It is a no-op before preparation.
func (b *Beep) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.prepared {
		return
	}

	if b.current == nil || b.current.ended.Load() {
		r := &run{}
		gen := b.gen
		b.current = r
		b.out.Play(beep.Seq(b.ctrl, beep.Callback(func() {
			r.ended.Store(true)
			go b.finished(gen, r)
		})))
	}

	b.out.Lock()
	b.ctrl.Paused = false
	b.out.Unlock()
}

func (b *Beep) finished(gen uint64, r *run) {
	b.mu.Lock()
	if gen != b.gen || b.current != r {
		b.mu.Unlock()
		return
	}
	cb := b.onCompletion
	b.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// SeekTo moves playback to pos, clamped to the stream bounds.
func (b *Beep) SeekTo(pos time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.prepared {
		return ErrNotPrepared
	}

	b.out.Lock()
	defer b.out.Unlock()

	n := min(max(b.format.SampleRate.N(pos), 0), b.decoder.Len())
	if err := b.decoder.Seek(n); err != nil {
		return err
	}
	b.stretch.Reset()
	return nil
}

// Reset stops playback and releases the source. Safe to call repeatedly.
func (b *Beep) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
}

func (b *Beep) releaseLocked() {
	b.gen++

	if b.current != nil && !b.current.ended.Load() && b.ctrl != nil {
		// A nil streamer ends the queued sequence; its callback is stale now
		b.out.Lock()
		b.ctrl.Streamer = nil
		b.out.Unlock()
	}

	switch {
	case b.decoder != nil:
		// Decoders own the file
		b.decoder.Close()
	case b.file != nil:
		b.file.Close()
	}

	b.file = nil
	b.decoder = nil
	b.format = beep.Format{}
	b.stretch = nil
	b.ctrl = nil
	b.current = nil
	b.prepared = false
	b.params = NeutralParams
}

func (b *Beep) Duration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.decoder == nil {
		return 0
	}
	return b.format.SampleRate.D(b.decoder.Len())
}

func (b *Beep) CurrentPosition() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.decoder == nil {
		return 0
	}
	b.out.Lock()
	pos := b.decoder.Position()
	b.out.Unlock()
	return b.format.SampleRate.D(pos)
}

func (b *Beep) PlaybackParams() Params {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

// SetPlaybackParams applies p to the prepared stream.
func (b *Beep) SetPlaybackParams(p Params) error {
	if p.Speed <= 0 || math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, p.Speed)
	}
	if p.Pitch != 1.0 {
		return ErrPitchUnsupported
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.prepared {
		return ErrNotPrepared
	}

	b.out.Lock()
	b.stretch.SetSpeed(p.Speed)
	b.out.Unlock()

	b.params = p
	return nil
}

// Verify Beep implements Handle at compile time.
var _ Handle = (*Beep)(nil)
