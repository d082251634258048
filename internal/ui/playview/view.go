package playview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/reviewaudio/internal/icons"
	"github.com/llehouerou/reviewaudio/internal/ui"
	"github.com/llehouerou/reviewaudio/internal/ui/styles"
)

// Height is the number of rows the widget renders.
const Height = 3

// buttonChrome is border plus padding on both sides of a button.
const buttonChrome = 4

type span struct {
	x, w int
}

func (s span) contains(x int) bool {
	return x >= s.x && x < s.x+s.w
}

// layout holds the horizontal position of each part of the row.
type layout struct {
	play, bar, speed, cancel span
}

func (l layout) hit(x int) (button, bool) {
	switch {
	case l.play.contains(x):
		return playButton, true
	case l.speed.contains(x):
		return speedButton, true
	case l.cancel.contains(x):
		return cancelButton, true
	default:
		return 0, false
	}
}

func (m Model) layout() layout {
	var l layout

	l.play = span{x: 0, w: iconCellWidth() + buttonChrome}
	l.speed.w = ansi.StringWidth(m.speedText()) + buttonChrome
	l.cancel.w = ansi.StringWidth(icons.Cancel()) + buttonChrome

	fixed := l.play.w + l.speed.w + l.cancel.w + 3*ui.ComponentGap
	l.bar = span{x: l.play.w + ui.ComponentGap, w: max(m.Width()-fixed, ui.MinProgressBarWidth)}
	l.speed.x = l.bar.x + l.bar.w + ui.ComponentGap
	l.cancel.x = l.speed.x + l.speed.w + ui.ComponentGap

	return l
}

// iconCellWidth is the widest glyph the play button can show, so the
// layout does not shift while the icon animates.
func iconCellWidth() int {
	w := 1
	for _, i := range []icons.Icon{icons.Play, icons.Pause, icons.Replay, icons.Stop} {
		w = max(w, ansi.StringWidth(icons.Glyph(i)))
	}
	for _, t := range []float64{0, 0.25, 0.5, 0.75} {
		w = max(w, ansi.StringWidth(icons.SpinFrame(t)))
	}
	return w
}

func (m Model) speedText() string {
	return icons.Speed() + m.speedLabel
}

func (m Model) iconGlyph() string {
	if m.spin.active {
		return icons.SpinFrame(m.spin.turn())
	}
	return icons.Glyph(m.icon)
}

// View renders the widget as a single row of bordered buttons.
func (m Model) View() string {
	l := m.layout()
	t := styles.T()

	glyph := lipgloss.NewStyle().
		Width(iconCellWidth()).
		Foreground(styles.Fade(t.FgBase, t.BgBase, m.alpha)).
		Render(m.iconGlyph())

	play := m.renderButton(playButton, glyph)
	speed := m.renderButton(speedButton, t.S().Speed.Render(m.speedText()))
	cancel := m.renderButton(cancelButton, t.S().Base.Render(icons.Cancel()))

	gap := strings.Repeat(" ", ui.ComponentGap)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		play, gap, m.renderBar(l.bar.w), gap, speed, gap, cancel)
}

func (m Model) renderButton(b button, content string) string {
	focused := m.IsFocused() && m.focus == b
	return styles.ButtonStyle(focused).Render(content)
}

func (m Model) renderBar(width int) string {
	if m.max <= 0 {
		return styles.T().S().Subtle.Render(strings.Repeat("░", width))
	}

	bar := m.bar
	bar.Width = width
	if m.jump {
		return bar.ViewAs(m.Percent())
	}
	return bar.View()
}
