package playview

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reviewaudio/internal/keymap"
)

// Update handles messages for the widget.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd
	case spinFrameMsg:
		return m.handleSpinFrame(msg)
	case fadeFrameMsg:
		return m.handleFadeFrame(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.IsFocused() {
		return m, nil
	}

	switch m.keys.Resolve(msg.String()) { //nolint:exhaustive // owner handles the rest
	case keymap.ActionFocusNext:
		m.focus = (m.focus + 1) % buttonCount
	case keymap.ActionFocusPrev:
		m.focus = (m.focus + buttonCount - 1) % buttonCount
	case keymap.ActionActivate:
		return m, m.press(m.focus)
	case keymap.ActionPlay:
		return m, m.press(playButton)
	case keymap.ActionCancel:
		return m, m.press(cancelButton)
	case keymap.ActionSpeed:
		return m, m.press(speedButton)
	}
	return m, nil
}

// handleMouse presses the button under a left click. Coordinates are
// relative to the widget's top-left corner.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.InBounds(msg.X, msg.Y) {
		return m, nil
	}

	b, ok := m.layout().hit(msg.X)
	if !ok {
		return m, nil
	}
	m.focus = b
	return m, m.press(b)
}

func (m *Model) press(b button) tea.Cmd {
	switch b {
	case playButton:
		return m.PressPlay()
	case speedButton:
		return m.PressSpeed()
	case cancelButton:
		return m.PressCancel()
	default:
		return nil
	}
}
