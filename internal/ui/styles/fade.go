package styles

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Fade returns the color at opacity alpha of fg drawn over bg, blended in
// HCL space. alpha is clamped to [0, 1].
func Fade(fg, bg lipgloss.Color, alpha float64) lipgloss.Color {
	alpha = min(max(alpha, 0), 1)
	if alpha == 1 {
		return fg
	}

	c1, _ := colorful.MakeColor(lipglossToColor(bg))
	c2, _ := colorful.MakeColor(lipglossToColor(fg))
	return lipgloss.Color(c1.BlendHcl(c2, alpha).Clamped().Hex())
}

// lipglossToColor converts a lipgloss.Color to a color.Color.
func lipglossToColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		col, err := colorful.Hex(hex)
		if err == nil {
			return col
		}
	}
	// Fallback for ANSI colors - return a neutral gray
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}
