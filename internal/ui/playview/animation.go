package playview

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reviewaudio/internal/icons"
)

const (
	frameInterval = time.Second / 60

	rotateDuration  = 400 * time.Millisecond
	fadeOutDuration = 100 * time.Millisecond
	fadeInDuration  = 300 * time.Millisecond

	rotateFrames  = int(rotateDuration / frameInterval)
	fadeOutFrames = int(fadeOutDuration / frameInterval)
	fadeInFrames  = int(fadeInDuration / frameInterval)
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// spinFrameMsg advances the replay icon rotation.
type spinFrameMsg struct {
	id  int
	tag int
}

// fadeFrameMsg advances the play icon crossfade.
type fadeFrameMsg struct {
	id  int
	tag int
}

// spin is a single counter-clockwise turn of the icon.
type spin struct {
	tag    int
	frame  int
	active bool
}

// turn returns the completed fraction of the turn, decelerating.
func (s spin) turn() float64 {
	if !s.active {
		return 0
	}
	return decelerate(float64(s.frame) / float64(rotateFrames))
}

// fade swaps the icon to next: alpha goes from its value at the start
// down to 0, the icon changes, then alpha rises back to 1.
type fade struct {
	tag    int
	frame  int
	from   float64
	next   icons.Icon
	active bool
}

func decelerate(f float64) float64 {
	f = min(max(f, 0), 1)
	return 1 - (1-f)*(1-f)
}

func spinTick(id, tag int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return spinFrameMsg{id: id, tag: tag}
	})
}

func fadeTick(id, tag int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return fadeFrameMsg{id: id, tag: tag}
	})
}

func (m Model) handleSpinFrame(msg spinFrameMsg) (Model, tea.Cmd) {
	if msg.id != m.id || msg.tag != m.spin.tag || !m.spin.active {
		return m, nil
	}

	m.spin.frame++
	if m.spin.frame >= rotateFrames {
		m.spin = spin{tag: m.spin.tag}
		return m, nil
	}
	return m, spinTick(m.id, m.spin.tag)
}

func (m Model) handleFadeFrame(msg fadeFrameMsg) (Model, tea.Cmd) {
	if msg.id != m.id || msg.tag != m.fade.tag || !m.fade.active {
		return m, nil
	}

	m.fade.frame++
	f := m.fade.frame

	switch {
	case f < fadeOutFrames:
		m.alpha = m.fade.from * (1 - float64(f)/float64(fadeOutFrames))
	case f == fadeOutFrames:
		m.alpha = 0
		m.icon = m.fade.next
	case f < fadeOutFrames+fadeInFrames:
		m.alpha = float64(f-fadeOutFrames) / float64(fadeInFrames)
	default:
		m.alpha = 1
		m.fade = fade{tag: m.fade.tag}
		return m, nil
	}

	return m, fadeTick(m.id, m.fade.tag)
}
