package media

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

// manualOutput is an Output the test drains by hand instead of a sound card.
type manualOutput struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	mixer beep.Mixer
}

func (o *manualOutput) Init(sr beep.SampleRate) (beep.SampleRate, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.rate == 0 {
		o.rate = sr
	}
	return o.rate, nil
}

func (o *manualOutput) Play(s ...beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s...)
	o.mu.Unlock()
}

func (o *manualOutput) Lock()   { o.mu.Lock() }
func (o *manualOutput) Unlock() { o.mu.Unlock() }

// drain streams until every queued streamer has finished.
func (o *manualOutput) drain() int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		o.mu.Lock()
		if o.mixer.Len() == 0 {
			o.mu.Unlock()
			return total
		}
		n, _ := o.mixer.Stream(buf)
		total += n
		o.mu.Unlock()
	}
}

// writeWAV writes a mono 16-bit WAV file of n samples at rate.
func writeWAV(t *testing.T, dir string, rate beep.SampleRate, n int) string {
	t.Helper()
	path := filepath.Join(dir, "clip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, &constStreamer{samples: n, value: 0.25}, format))
	return path
}

// prepared prepares path on b and waits for the callback.
func prepared(t *testing.T, b *Beep, path string) {
	t.Helper()
	done := make(chan struct{})
	b.SetOnPrepared(func() { close(done) })
	b.SetOnError(func(err error) { t.Errorf("unexpected prepare error: %v", err) })

	require.NoError(t, b.SetDataSource(path))
	b.PrepareAsync()

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for preparation")
	}
}

func TestBeep_SetDataSource_UnsupportedFormat(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})

	err := b.SetDataSource("/tmp/clip.aac")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBeep_SetDataSource_MissingFile(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})

	err := b.SetDataSource(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBeep_UnpreparedGuards(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})

	assert.Zero(t, b.Duration())
	assert.Zero(t, b.CurrentPosition())
	assert.ErrorIs(t, b.SeekTo(time.Second), ErrNotPrepared)
	assert.ErrorIs(t, b.SetPlaybackParams(Params{Speed: 2, Pitch: 1}), ErrNotPrepared)
	assert.Equal(t, NeutralParams, b.PlaybackParams())

	// Start before preparation does nothing
	b.Start()
}

func TestBeep_PrepareWithoutSourceReportsError(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})
	errCh := make(chan error, 1)
	b.SetOnError(func(err error) { errCh <- err })

	b.PrepareAsync()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrNoDataSource)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for error")
	}
}

func TestBeep_PrepareCorruptFileReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x42}, 64), 0o600))

	b := NewBeepWithOutput(&manualOutput{})
	errCh := make(chan error, 1)
	b.SetOnPrepared(func() { t.Error("prepared callback should not run") })
	b.SetOnError(func(err error) { errCh <- err })

	require.NoError(t, b.SetDataSource(path))
	b.PrepareAsync()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for error")
	}
}

func TestBeep_PlayToCompletion(t *testing.T) {
	out := &manualOutput{}
	b := NewBeepWithOutput(out)
	path := writeWAV(t, t.TempDir(), 8000, 8000)

	prepared(t, b, path)
	assert.Equal(t, time.Second, b.Duration())
	assert.Zero(t, b.CurrentPosition())

	completed := make(chan struct{}, 4)
	b.SetOnCompletion(func() { completed <- struct{}{} })

	b.Start()
	out.drain()

	select {
	case <-completed:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for completion")
	}
	assert.Equal(t, time.Second, b.CurrentPosition())

	// Exactly one completion per pass
	select {
	case <-completed:
		t.Fatal("completion fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBeep_ReplayAfterCompletion(t *testing.T) {
	out := &manualOutput{}
	b := NewBeepWithOutput(out)
	prepared(t, b, writeWAV(t, t.TempDir(), 8000, 4000))

	completed := make(chan struct{}, 4)
	b.SetOnCompletion(func() { completed <- struct{}{} })

	b.Start()
	out.drain()
	<-completed

	require.NoError(t, b.SeekTo(0))
	assert.Zero(t, b.CurrentPosition())

	b.Start()
	streamed := out.drain()
	assert.Positive(t, streamed)

	select {
	case <-completed:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for second completion")
	}
}

func TestBeep_SeekClampsToBounds(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})
	prepared(t, b, writeWAV(t, t.TempDir(), 8000, 8000))

	require.NoError(t, b.SeekTo(500*time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, b.CurrentPosition())

	require.NoError(t, b.SeekTo(10*time.Second))
	assert.Equal(t, time.Second, b.CurrentPosition())

	require.NoError(t, b.SeekTo(-time.Second))
	assert.Zero(t, b.CurrentPosition())
}

func TestBeep_SetPlaybackParams(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})
	prepared(t, b, writeWAV(t, t.TempDir(), 8000, 8000))

	assert.ErrorIs(t, b.SetPlaybackParams(Params{Speed: 0, Pitch: 1}), ErrInvalidSpeed)
	assert.ErrorIs(t, b.SetPlaybackParams(Params{Speed: 1.5, Pitch: 1.2}), ErrPitchUnsupported)
	assert.Equal(t, NeutralParams, b.PlaybackParams())

	want := Params{Speed: 1.5, Pitch: 1}
	require.NoError(t, b.SetPlaybackParams(want))
	assert.Equal(t, want, b.PlaybackParams())
}

func TestBeep_FasterSpeedStreamsFewerSamples(t *testing.T) {
	out := &manualOutput{}
	b := NewBeepWithOutput(out)
	prepared(t, b, writeWAV(t, t.TempDir(), 8000, 16000))

	done := make(chan struct{}, 1)
	b.SetOnCompletion(func() { done <- struct{}{} })
	require.NoError(t, b.SetPlaybackParams(Params{Speed: 2, Pitch: 1}))

	b.Start()
	streamed := out.drain()
	<-done

	// The mixer streams in 512-sample chunks; about 8000 samples of audio
	assert.InDelta(t, 8000, streamed, 2048)
}

func TestBeep_ResetIsIdempotent(t *testing.T) {
	out := &manualOutput{}
	b := NewBeepWithOutput(out)
	prepared(t, b, writeWAV(t, t.TempDir(), 8000, 8000))
	b.SetOnCompletion(func() { t.Error("completion should not fire after reset") })

	b.Start()
	b.Reset()
	b.Reset()

	// The queued pass ends without reporting completion
	out.drain()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, b.Duration())
	assert.Zero(t, b.CurrentPosition())
	assert.ErrorIs(t, b.SeekTo(0), ErrNotPrepared)
}

func TestBeep_SetDataSourceReleasesPrevious(t *testing.T) {
	b := NewBeepWithOutput(&manualOutput{})
	dir := t.TempDir()
	prepared(t, b, writeWAV(t, dir, 8000, 8000))

	other := filepath.Join(dir, "other.wav")
	require.NoError(t, os.Rename(writeWAV(t, t.TempDir(), 8000, 4000), other))

	require.NoError(t, b.SetDataSource(other))
	assert.Zero(t, b.Duration(), "previous stream should be released")
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clip.mp3", true},
		{"CLIP.MP3", true},
		{"clip.flac", true},
		{"clip.wav", true},
		{"clip.aac", false},
		{"clip", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupported(tt.path), tt.path)
	}
}

func TestSkipID3v2(t *testing.T) {
	t.Run("no tag rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC0123456789"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Zero(t, pos)
	})

	t.Run("tag is skipped", func(t *testing.T) {
		data := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}, []byte("xxxxxfLaC")...)
		r := bytes.NewReader(data)
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(15), pos)
	})

	t.Run("short input rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("ID3"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Zero(t, pos)
	})
}

func TestDecodeFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, _, err = decodeFile(f)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
