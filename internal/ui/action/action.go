// Package action defines the interface for UI component actions.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action represents an action from a UI component.
// The ActionType method returns a string identifier for logging.
type Action interface {
	ActionType() string
}

// Msg wraps a UI action with the name of the component that raised it.
type Msg struct {
	Source string
	Action Action
}

// New wraps a in a Msg from source.
func New(source string, a Action) Msg {
	return Msg{Source: source, Action: a}
}

// Cmd returns a command that delivers a from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg { return New(source, a) }
}

// From reports whether the message was raised by source.
func (m Msg) From(source string) bool {
	return m.Source == source
}

var _ tea.Msg = Msg{}
