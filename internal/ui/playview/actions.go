package playview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reviewaudio/internal/ui/action"
)

// PlayPressed is emitted when the play button is pressed.
type PlayPressed struct{}

// ActionType implements action.Action.
func (a PlayPressed) ActionType() string { return "playview.play_pressed" }

// CancelPressed is emitted when the cancel button is pressed.
type CancelPressed struct{}

// ActionType implements action.Action.
func (a CancelPressed) ActionType() string { return "playview.cancel_pressed" }

// SpeedChanged is emitted after the speed button stored a new speed.
type SpeedChanged struct {
	Speed string // e.g. "1.25"
}

// ActionType implements action.Action.
func (a SpeedChanged) ActionType() string { return "playview.speed_changed" }

// Source is the action.Msg source name of this component.
const Source = "playview"

// ActionMsg creates an action.Msg for a playview action.
func ActionMsg(a action.Action) action.Msg {
	return action.New(Source, a)
}

func actionCmd(a action.Action) tea.Cmd {
	return action.Cmd(Source, a)
}
