package icons

import "math"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icon identifies a glyph the play button can show.
type Icon int

const (
	Play Icon = iota
	Pause
	Replay
	Stop
)

func (i Icon) String() string {
	switch i {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Replay:
		return "replay"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Icons holds the icon characters for the current style.
type Icons struct {
	Play   string
	Pause  string
	Replay string
	Stop   string
	Cancel string
	Speed  string

	// Spin is one counter-clockwise turn, starting upright.
	Spin []string
}

var (
	nerdIcons = Icons{
		Play:   "", // nf-fa-play
		Pause:  "", // nf-fa-pause
		Replay: "", // nf-fa-rotate_left
		Stop:   "", // nf-fa-stop
		Cancel: "", // nf-fa-xmark
		Speed:  "󰓅 ",     // nf-md-speedometer
		Spin:   []string{"", "󰑓", "", "󰑐"},
	}

	unicodeIcons = Icons{
		Play:   "▶",
		Pause:  "⏸",
		Replay: "↺",
		Stop:   "■",
		Cancel: "✕",
		Speed:  "⏱ ",
		Spin:   []string{"◐", "◒", "◑", "◓"},
	}

	noneIcons = Icons{
		Play:   ">",
		Pause:  "=",
		Replay: "@",
		Stop:   "#",
		Cancel: "x",
		Speed:  "",
		Spin:   []string{"|", "\\", "-", "/"},
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Active returns the style currently in use.
func Active() Style {
	switch current.Play {
	case nerdIcons.Play:
		return StyleNerd
	case unicodeIcons.Play:
		return StyleUnicode
	default:
		return StyleNone
	}
}

// Glyph returns the character for icon i. Unknown icons fall back to Play.
func Glyph(i Icon) string {
	switch i {
	case Pause:
		return current.Pause
	case Replay:
		return current.Replay
	case Stop:
		return current.Stop
	default:
		return current.Play
	}
}

// Cancel returns the cancel button glyph.
func Cancel() string {
	return current.Cancel
}

// Speed returns the speed button prefix. Empty for the "none" style.
func Speed() string {
	return current.Speed
}

// SpinFrame returns the frame for a rotation of turn turns, where 0 is
// upright and 1 is a full counter-clockwise turn.
func SpinFrame(turn float64) string {
	n := len(current.Spin)
	idx := int(math.Floor(turn*float64(n)+0.5)) % n
	if idx < 0 {
		idx += n
	}
	return current.Spin[idx]
}
