// Package playview is the recording playback widget: a play button, a
// progress bar, a speed button and a cancel button.
//
// The widget does not play audio. Presses are reported to the registered
// listeners and as action messages; the owner drives playback and pushes
// progress back with SetPlaybackProgress.
package playview

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/reviewaudio/internal/icons"
	"github.com/llehouerou/reviewaudio/internal/keymap"
	"github.com/llehouerou/reviewaudio/internal/prefs"
	"github.com/llehouerou/reviewaudio/internal/speed"
	"github.com/llehouerou/reviewaudio/internal/ui"
	"github.com/llehouerou/reviewaudio/internal/ui/styles"
)

// DefaultMax is the progress bar bound before SetPlaybackProgressBarMax.
const DefaultMax = 100

type button int

const (
	playButton button = iota
	speedButton
	cancelButton
	buttonCount
)

// Model represents the playback widget state.
type Model struct {
	ui.Base

	id    int
	store prefs.Store
	keys  *keymap.Resolver

	bar   progress.Model
	value int
	max   int
	jump  bool // render value without the bar animation

	icon       icons.Icon
	alpha      float64
	speedLabel string
	focus      button

	pressListener ButtonPressListener
	speedListener SpeedButtonListener

	spin spin
	fade fade
}

// New creates a widget reading and storing the speed in store.
// The speed button shows the stored speed right away.
func New(store prefs.Store) Model {
	m := Model{
		id:    nextID(),
		store: store,
		keys:  keymap.Default(),
		bar:   newBar(),
		max:   DefaultMax,
		jump:  true,
		icon:  icons.Play,
		alpha: 1,
	}
	m.DisplaySpeedOnButton()
	return m
}

func newBar() progress.Model {
	t := styles.T()
	bar := progress.New(
		progress.WithSolidFill(string(t.Primary)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.ProgressEmpty)
	return bar
}

// SetButtonPressListener registers the play/cancel listener, replacing
// any previous one. A nil listener is ignored.
func (m *Model) SetButtonPressListener(l ButtonPressListener) {
	if l == nil {
		return
	}
	m.pressListener = l
}

// SetSpeedButtonListener registers the speed listener. Nil clears it.
func (m *Model) SetSpeedButtonListener(l SpeedButtonListener) {
	m.speedListener = l
}

// PressPlay behaves like a press on the play button.
func (m *Model) PressPlay() tea.Cmd {
	if m.pressListener != nil {
		m.pressListener.OnPlayButtonPressed()
	}
	return actionCmd(PlayPressed{})
}

// PressCancel behaves like a press on the cancel button.
func (m *Model) PressCancel() tea.Cmd {
	if m.pressListener != nil {
		m.pressListener.OnCancelButtonPressed()
	}
	return actionCmd(CancelPressed{})
}

// PressSpeed advances the stored speed to the next choice, updates the
// label and notifies the speed listener. A failed store write is logged;
// the label and listener still see the new speed.
func (m *Model) PressSpeed() tea.Cmd {
	next, err := speed.Cycle(m.store)
	if err != nil {
		log.Warn("could not store playback speed", "speed", next, "err", err)
	}

	m.speedLabel = speed.Label(next)

	if m.speedListener != nil {
		m.speedListener.OnSpeedChanged(next)
	}
	return actionCmd(SpeedChanged{Speed: next})
}

// CurrentSpeedString returns the stored speed, or "1.0" when unset or invalid.
func (m Model) CurrentSpeedString() string {
	return speed.Current(m.store)
}

// DisplaySpeedOnButton re-reads the stored speed into the button label.
func (m *Model) DisplaySpeedOnButton() {
	m.speedLabel = speed.Label(m.CurrentSpeedString())
}

// SpeedLabel returns the text on the speed button, e.g. "1.25x".
func (m Model) SpeedLabel() string {
	return m.speedLabel
}

// RotateReplayIcon spins the play icon one full turn counter-clockwise.
// Calling it again restarts the turn.
func (m *Model) RotateReplayIcon() tea.Cmd {
	m.spin = spin{tag: m.spin.tag + 1, active: true}
	return spinTick(m.id, m.spin.tag)
}

// ChangePlayIcon fades the play icon out, swaps it to icon, and fades it
// back in. A change started mid-fade fades out from the current opacity
// and drops the earlier pending icon.
func (m *Model) ChangePlayIcon(icon icons.Icon) tea.Cmd {
	m.fade = fade{
		tag:    m.fade.tag + 1,
		from:   m.alpha,
		next:   icon,
		active: true,
	}
	return fadeTick(m.id, m.fade.tag)
}

// Icon returns the icon currently shown on the play button.
func (m Model) Icon() icons.Icon {
	return m.icon
}

// SetPlaybackProgress moves the bar to value, clamped to [0, max].
// Zero is applied immediately; other values animate.
func (m *Model) SetPlaybackProgress(value int) tea.Cmd {
	m.value = min(max(value, 0), m.max)

	if m.value == 0 {
		// A fresh bar drops any in-flight animation frames
		m.bar = newBar()
		m.jump = true
		return nil
	}

	m.jump = false
	return m.bar.SetPercent(m.Percent())
}

// SetPlaybackProgressBarMax sets the bar's upper bound. Negative values
// are treated as 0, which renders an empty bar.
func (m *Model) SetPlaybackProgressBarMax(n int) {
	m.max = max(n, 0)
	m.value = min(m.value, m.max)
	m.bar = newBar()
	m.jump = true
}

// Progress returns the current progress value.
func (m Model) Progress() int {
	return m.value
}

// Max returns the progress bar bound.
func (m Model) Max() int {
	return m.max
}

// Percent returns value/max, or 0 for an empty bound.
func (m Model) Percent() float64 {
	if m.max <= 0 {
		return 0
	}
	return float64(m.value) / float64(m.max)
}

// Animating reports whether an icon animation is running.
func (m Model) Animating() bool {
	return m.spin.active || m.fade.active
}
