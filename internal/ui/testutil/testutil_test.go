package testutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no ansi codes",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "with color codes",
			input: "\x1b[31mred\x1b[0m text",
			want:  "red text",
		},
		{
			name:  "with multiple codes",
			input: "\x1b[1;32mbold green\x1b[0m",
			want:  "bold green",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMeasureWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("▶ play")
	if got := MeasureWidth(styled); got != 6 {
		t.Errorf("MeasureWidth() = %d, want 6", got)
	}
}

func TestLines(t *testing.T) {
	got := Lines("\x1b[1mone\x1b[0m\ntwo\n\n  \n")
	if len(got) != 2 {
		t.Fatalf("Lines() returned %d lines, want 2: %q", len(got), got)
	}
	if got[0] != "one" || got[1] != "two" {
		t.Errorf("Lines() = %q", got)
	}
}

func TestFindLine(t *testing.T) {
	output := "header\n\x1b[32mstatus: ok\x1b[0m\nfooter"

	if got := FindLine(output, "status"); got != "status: ok" {
		t.Errorf("FindLine() = %q, want %q", got, "status: ok")
	}
	if got := FindLine(output, "missing"); got != "" {
		t.Errorf("FindLine() = %q, want empty", got)
	}
}
