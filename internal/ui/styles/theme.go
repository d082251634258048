package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Accents
	Primary   lipgloss.Color // focused button, progress fill
	Secondary lipgloss.Color // speed label

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase lipgloss.Color // fade target for the play icon

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	ProgressEmpty lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Title  lipgloss.Style
	Speed  lipgloss.Style
	Error  lipgloss.Style
}

// Overrides replaces theme colors. Empty fields keep the default.
// Values are "#rrggbb" hex strings.
type Overrides struct {
	Accent     string // Primary and BorderFocus
	Speed      string // Secondary
	Background string // BgBase
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase: lipgloss.Color("#1a1a1a"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	ProgressEmpty: lipgloss.Color("#303030"),

	Error: lipgloss.Color("#ff5555"),
}

var current = defaultTheme

// T returns the active theme.
func T() *Theme {
	return &current
}

// Apply makes the default theme with o applied the active theme. On an
// invalid color the active theme is left unchanged.
func Apply(o Overrides) error {
	t := defaultTheme
	for _, f := range []struct {
		name  string
		value string
		dst   []*lipgloss.Color
	}{
		{"accent", o.Accent, []*lipgloss.Color{&t.Primary, &t.BorderFocus}},
		{"speed", o.Speed, []*lipgloss.Color{&t.Secondary}},
		{"background", o.Background, []*lipgloss.Color{&t.BgBase}},
	} {
		if f.value == "" {
			continue
		}
		c, err := colorful.Hex(f.value)
		if err != nil {
			return fmt.Errorf("theme %s color %q: %w", f.name, f.value, err)
		}
		for _, d := range f.dst {
			*d = lipgloss.Color(c.Hex())
		}
	}
	current = t
	return nil
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Speed:  lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(t.Error),
	}
}
