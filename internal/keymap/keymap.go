// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Binding maps keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Short       string // footer label; empty hides the binding from help
}

// All contains all key bindings, in footer order.
var All = []Binding{
	{ActionPlay, []string{"p"}, "Play or replay", "play"},
	{ActionSpeed, []string{"s"}, "Cycle playback speed", "speed"},
	{ActionReplay, []string{"r"}, "Replay from start", "replay"},
	{ActionCancel, []string{"x", "esc"}, "Stop and reset", "cancel"},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "quit"},

	{ActionFocusNext, []string{"tab", "right", "l"}, "Next button", ""},
	{ActionFocusPrev, []string{"shift+tab", "left", "h"}, "Previous button", ""},
	{ActionActivate, []string{"enter", " "}, "Press focused button", ""},
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}
