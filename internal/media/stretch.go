package media

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// stretchWindow is the analysis frame length used for time stretching.
const stretchWindow = 40 * time.Millisecond

// Stretcher changes playback speed without changing pitch, using
// overlap-add of Hann-windowed frames at a fixed synthesis hop of half a
// frame. Frames are read from the source at hop*speed intervals.
//
// At speed 1.0 samples pass straight through. Audio buffered when the
// speed crosses 1.0 is carried into the new mode.
// Stretcher is not safe for concurrent use; guard it with speaker.Lock.
type Stretcher struct {
	src    beep.Streamer
	speed  float64
	size   int
	hop    int
	window []float64

	in      [][2]float64 // buffered input; in[0] is at analysis offset 0
	pos     float64      // analysis position relative to in[0]
	acc     [][2]float64 // overlap-add accumulator
	out     [][2]float64 // finished samples not yet streamed
	outBuf  [][2]float64
	readBuf [][2]float64

	srcDone bool
	flushed bool
	primed  bool
	err     error
}

// NewStretcher wraps src with a stretcher using frames of size samples.
// size is rounded down to an even number, minimum 64.
func NewStretcher(src beep.Streamer, size int) *Stretcher {
	size = max(size&^1, 64)
	window := make([]float64, size)
	for i := range window {
		// Periodic Hann: windows at half-frame hops sum to exactly 1
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}
	return &Stretcher{
		src:     src,
		speed:   1.0,
		size:    size,
		hop:     size / 2,
		window:  window,
		acc:     make([][2]float64, size),
		outBuf:  make([][2]float64, 0, size/2),
		readBuf: make([][2]float64, 512),
	}
}

// NewStretcherForRate sizes the frame for the given sample rate.
func NewStretcherForRate(src beep.Streamer, sr beep.SampleRate) *Stretcher {
	return NewStretcher(src, sr.N(stretchWindow))
}

// Speed returns the current speed ratio.
func (s *Stretcher) Speed() float64 { return s.speed }

// SetSpeed sets the speed ratio. Non-positive values are ignored.
func (s *Stretcher) SetSpeed(speed float64) {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return
	}
	switch {
	case s.speed != 1 && speed == 1:
		s.toPassthrough()
	case s.speed == 1 && speed != 1:
		s.toStretched()
	}
	s.speed = speed
}

// toPassthrough finishes the overlap in progress and queues the unread
// input after it, so passthrough resumes where the stretch left off.
func (s *Stretcher) toPassthrough() {
	start := int(s.pos)
	s.fill(start + s.hop)

	pending := append([][2]float64(nil), s.out...)
	raw := start
	if s.primed && !s.flushed {
		for i := range s.hop {
			if start+i >= len(s.in) {
				pending = append(pending, s.acc[i:s.hop]...)
				break
			}
			x := s.in[start+i]
			pending = append(pending, [2]float64{
				s.acc[i][0] + x[0]*s.window[i],
				s.acc[i][1] + x[1]*s.window[i],
			})
		}
		raw = start + s.hop
	}
	if raw < len(s.in) {
		pending = append(pending, s.in[raw:]...)
	}

	s.out = pending
	s.in = s.in[:0]
	s.pos = 0
	clear(s.acc)
	s.primed = false
	s.flushed = s.srcDone
}

// toStretched moves samples queued for passthrough back into the input.
func (s *Stretcher) toStretched() {
	s.in = append(s.in[:0], s.out...)
	s.out = nil
	s.pos = 0
	clear(s.acc)
	s.primed = false
	s.flushed = s.srcDone && len(s.in) == 0
}

// Reset drops buffered audio. Call it after seeking the source.
func (s *Stretcher) Reset() {
	s.in = s.in[:0]
	s.pos = 0
	clear(s.acc)
	s.out = nil
	s.srcDone = false
	s.flushed = false
	s.primed = false
	s.err = nil
}

func (s *Stretcher) Stream(samples [][2]float64) (n int, ok bool) {
	if s.speed == 1 {
		n = copy(samples, s.out)
		s.out = s.out[n:]
		if n == len(samples) {
			return n, true
		}
		m, more := s.src.Stream(samples[n:])
		n += m
		return n, n > 0 || more
	}

	for n < len(samples) {
		if len(s.out) > 0 {
			c := copy(samples[n:], s.out)
			s.out = s.out[c:]
			n += c
			continue
		}
		if !s.step() {
			break
		}
	}

	return n, n > 0
}

func (s *Stretcher) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.src.Err()
}

// step produces the next hop of output into s.out.
// Returns false once the source is exhausted and the tail is flushed.
func (s *Stretcher) step() bool {
	start := int(s.pos)
	s.fill(start + s.size)

	if !s.primed {
		// Seed the accumulator with the second half of a virtual frame one
		// hop earlier, so the first hop comes out at full level.
		s.primed = true
		for i := 0; i < s.hop && start+i < len(s.in); i++ {
			x := s.in[start+i]
			s.acc[i][0] += x[0] * s.window[i+s.hop]
			s.acc[i][1] += x[1] * s.window[i+s.hop]
		}
	}

	if start >= len(s.in) && s.srcDone {
		if s.flushed {
			return false
		}
		s.flushed = true
		s.out = append(s.outBuf[:0], s.acc[:s.size-s.hop]...)
		clear(s.acc)
		return len(s.out) > 0
	}

	for i, w := range s.window {
		if start+i >= len(s.in) {
			break
		}
		x := s.in[start+i]
		s.acc[i][0] += x[0] * w
		s.acc[i][1] += x[1] * w
	}

	s.out = append(s.outBuf[:0], s.acc[:s.hop]...)
	copy(s.acc, s.acc[s.hop:])
	clear(s.acc[s.size-s.hop:])

	s.pos += float64(s.hop) * s.speed
	if drop := min(int(s.pos), len(s.in)); drop > 0 {
		s.in = append(s.in[:0], s.in[drop:]...)
		s.pos -= float64(drop)
	}

	return true
}

// fill reads from the source until need samples are buffered or it ends.
func (s *Stretcher) fill(need int) {
	for len(s.in) < need && !s.srcDone {
		n, ok := s.src.Stream(s.readBuf)
		s.in = append(s.in, s.readBuf[:n]...)
		if !ok {
			s.srcDone = true
			s.err = s.src.Err()
		}
	}
}
