package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/reviewaudio/internal/player"
	"github.com/llehouerou/reviewaudio/internal/ui/styles"
)

// minNameWidth keeps part of the file name visible on narrow terminals.
const minNameWidth = 8

// View implements tea.Model.
func (m Model) View() string {
	s := styles.T().S()

	size := ""
	if m.FileSize > 0 {
		size = "  " + humanize.IBytes(uint64(m.FileSize)) //nolint:gosec // size is positive
	}
	name := filepath.Base(m.Path)
	if m.Width > 0 {
		name = runewidth.Truncate(name, max(m.Width-runewidth.StringWidth(size), minNameWidth), "…")
	}
	header := s.Title.Render(name) + s.Muted.Render(size)

	status := m.statusLine()
	if strings.HasPrefix(m.Status, "Failed") {
		status = s.Error.Render(status)
	} else {
		status = s.Muted.Render(status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.fit(header),
		"",
		m.PlayView.View(),
		m.fit(status),
		m.fit(s.Subtle.Render(m.helpLine())),
	)
}

// fit truncates a rendered row to the terminal width.
func (m Model) fit(row string) string {
	if m.Width <= 0 {
		return row
	}
	return ansi.Truncate(row, m.Width, "…")
}

func (m Model) statusLine() string {
	if m.Status != "" {
		return m.Status
	}

	state := m.Player.State()
	if state == player.Idle || state == player.Preparing {
		return state.String()
	}
	return fmt.Sprintf("%s  %s / %s",
		state, formatDuration(m.Player.Position()), formatDuration(m.Player.Duration()))
}

func (m Model) helpLine() string {
	return m.Keys.Help(" · ")
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
