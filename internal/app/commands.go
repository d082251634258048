package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a command that sends a TickMsg for generation gen
// after every.
func TickCmd(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// startTicking begins a new progress loop, ending any previous one.
func (m *Model) startTicking() tea.Cmd {
	m.tickGen++
	return TickCmd(m.tickGen, m.Tick)
}

// stopTicking ends the current progress loop.
func (m *Model) stopTicking() {
	m.tickGen++
}
