// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// without style interference.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the visual width of a rendered string.
func MeasureWidth(s string) int {
	return lipgloss.Width(s)
}

// Lines strips styling and splits output into lines, dropping trailing
// blank lines.
func Lines(output string) []string {
	lines := strings.Split(StripANSI(output), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FindLine returns the first unstyled line containing substr, or "".
func FindLine(output, substr string) string {
	for _, line := range Lines(output) {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}
