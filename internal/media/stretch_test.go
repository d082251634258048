package media

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constStreamer produces a fixed number of samples at a constant value.
type constStreamer struct {
	samples  int
	value    float64
	produced int
}

func (c *constStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := c.samples - c.produced
	if remaining <= 0 {
		return 0, false
	}
	toWrite := min(len(samples), remaining)
	for i := range toWrite {
		samples[i] = [2]float64{c.value, c.value}
	}
	c.produced += toWrite
	return toWrite, true
}

func (c *constStreamer) Err() error { return nil }

// rampStreamer produces samples rising linearly from 0 towards 1.
type rampStreamer struct {
	samples  int
	produced int
}

func (r *rampStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && r.produced < r.samples {
		v := float64(r.produced) / float64(r.samples)
		samples[n] = [2]float64{v, v}
		r.produced++
		n++
	}
	return n, n > 0
}

func (r *rampStreamer) Err() error { return nil }

// drainAll streams s to exhaustion and returns every sample produced.
func drainAll(s *Stretcher) [][2]float64 {
	var all [][2]float64
	buf := make([][2]float64, 333)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			return all
		}
	}
}

func TestStretcher_PassthroughAtNormalSpeed(t *testing.T) {
	src := &constStreamer{samples: 10000, value: 0.5}
	s := NewStretcher(src, 1024)

	out := drainAll(s)

	assert.Len(t, out, 10000)
	for i := range out {
		assert.InDelta(t, 0.5, out[i][0], 1e-12)
	}
}

func TestStretcher_OutputLengthScalesWithSpeed(t *testing.T) {
	const input = 100000

	tests := []struct {
		speed float64
		want  float64
	}{
		{2.0, input / 2.0},
		{0.5, input / 0.5},
		{1.25, input / 1.25},
		{3.0, input / 3.0},
		{0.25, input / 0.25},
	}

	for _, tt := range tests {
		src := &constStreamer{samples: input, value: 0.5}
		s := NewStretcher(src, 1024)
		s.SetSpeed(tt.speed)

		out := drainAll(s)

		// One frame of slack for the partial last frame and flushed tail
		assert.InDelta(t, tt.want, float64(len(out)), 1024+512, "speed %v", tt.speed)
		assert.Equal(t, input, src.produced, "speed %v should consume all input", tt.speed)
	}
}

func TestStretcher_PreservesLevel(t *testing.T) {
	src := &constStreamer{samples: 50000, value: 0.5}
	s := NewStretcher(src, 1024)
	s.SetSpeed(1.5)

	out := drainAll(s)

	// The tail fades out once the source ends
	for i := 0; i < len(out)-3072; i++ {
		assert.InDelta(t, 0.5, out[i][0], 1e-9, "sample %d", i)
		assert.InDelta(t, 0.5, out[i][1], 1e-9, "sample %d", i)
	}
}

func TestStretcher_SetSpeedIgnoresInvalid(t *testing.T) {
	s := NewStretcher(&constStreamer{}, 1024)

	s.SetSpeed(0)
	assert.InDelta(t, 1.0, s.Speed(), 1e-12)

	s.SetSpeed(-2)
	assert.InDelta(t, 1.0, s.Speed(), 1e-12)

	s.SetSpeed(2)
	assert.InDelta(t, 2.0, s.Speed(), 1e-12)
}

func TestStretcher_ResetAllowsReuseAfterEnd(t *testing.T) {
	src := &constStreamer{samples: 4096, value: 0.5}
	s := NewStretcher(src, 256)
	s.SetSpeed(2)

	first := drainAll(s)
	assert.NotEmpty(t, first)

	// Rewind the source the way a seek would
	src.produced = 0
	s.Reset()

	second := drainAll(s)
	assert.Len(t, second, len(first))
}

func TestNewStretcher_SizeIsEvenWithMinimum(t *testing.T) {
	assert.Equal(t, 64, NewStretcher(&constStreamer{}, 3).size)
	assert.Equal(t, 1000, NewStretcher(&constStreamer{}, 1001).size)
	assert.Equal(t, 500, NewStretcher(&constStreamer{}, 1001).hop)
}

func TestStretcher_SpeedChangesDoNotSkipAudio(t *testing.T) {
	const input = 20000
	src := &rampStreamer{samples: input}
	s := NewStretcher(src, 256)

	var out [][2]float64
	buf := make([][2]float64, 100)
	stream := func(chunks int) {
		for range chunks {
			n, _ := s.Stream(buf)
			out = append(out, buf[:n]...)
		}
	}

	stream(10)
	s.SetSpeed(1.5)
	stream(20)
	s.SetSpeed(1)
	stream(20)
	s.SetSpeed(0.75)
	stream(20)
	s.SetSpeed(1)
	out = append(out, drainAll(s)...)

	require.NotEmpty(t, out)
	// A dropped frame shows up as a jump of a hundred ramp steps or more
	maxStep := 0.0
	for i := 1; i < len(out); i++ {
		maxStep = max(maxStep, math.Abs(out[i][0]-out[i-1][0]))
	}
	assert.Less(t, maxStep, 0.002)
	assert.InDelta(t, float64(input-1)/input, out[len(out)-1][0], 1e-12)
	assert.Equal(t, input, src.produced)
}

func TestStretcher_StretchStartsAtFullLevel(t *testing.T) {
	src := &constStreamer{samples: 4096, value: 0.5}
	s := NewStretcher(src, 256)
	s.SetSpeed(2)

	buf := make([][2]float64, 128)
	n, ok := s.Stream(buf)

	require.True(t, ok)
	for i := range n {
		assert.InDelta(t, 0.5, buf[i][0], 1e-9, "sample %d", i)
	}
}
