package player

import "time"

// Mock is a test double for Player.
type Mock struct {
	state        State
	position     time.Duration
	duration     time.Duration
	speed        float64
	playCalls    []string
	replayCalls  int
	closeCalls   int
	speedCalls   []float64
	onPrepared   func()
	onCompletion func()
	onError      func(error)
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Idle, speed: 1.0}
}

func (m *Mock) Play(path string, onPrepared func()) {
	m.playCalls = append(m.playCalls, path)
	m.onPrepared = onPrepared
	m.state = Preparing
}

func (m *Mock) Replay() {
	m.replayCalls++
	if m.state.CanReplay() {
		m.state = Playing
		m.position = 0
	}
}

func (m *Mock) SetPlaybackSpeed(speed float64) {
	m.speedCalls = append(m.speedCalls, speed)
	if m.state == Playing {
		m.speed = speed
	}
}

func (m *Mock) Close() error {
	m.closeCalls++
	m.state = Idle
	m.position = 0
	return nil
}

func (m *Mock) OnCompletion(fn func()) { m.onCompletion = fn }

func (m *Mock) OnError(fn func(error)) { m.onError = fn }

func (m *Mock) IsPlaying() bool { return m.state == Playing }

func (m *Mock) IsPrepared() bool { return m.state == Playing || m.state == Ready }

func (m *Mock) State() State { return m.state }

func (m *Mock) Duration() time.Duration {
	if !m.IsPrepared() {
		return 0
	}
	return m.duration
}

func (m *Mock) Position() time.Duration {
	if !m.IsPrepared() {
		return 0
	}
	return m.position
}

func (m *Mock) PlaybackSpeed() float64 { return m.speed }

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) PlayCalls() []string { return m.playCalls }

func (m *Mock) ReplayCalls() int { return m.replayCalls }

func (m *Mock) CloseCalls() int { return m.closeCalls }

func (m *Mock) SpeedCalls() []float64 { return m.speedCalls }

// SimulatePrepared finishes a pending Play and runs its callback.
func (m *Mock) SimulatePrepared() {
	m.state = Playing
	if m.onPrepared != nil {
		m.onPrepared()
	}
}

// SimulateCompletion simulates playback reaching the end.
func (m *Mock) SimulateCompletion() {
	m.state = Ready
	m.position = m.duration
	if m.onCompletion != nil {
		m.onCompletion()
	}
}

// SimulateError fails a pending Play, returning the mock to idle.
func (m *Mock) SimulateError(err error) {
	m.state = Idle
	m.position = 0
	if m.onError != nil {
		m.onError(err)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
