package styles

import "github.com/charmbracelet/lipgloss"

// ButtonStyle returns the rounded button frame for the active theme.
func ButtonStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
