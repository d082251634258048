package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"

	// Focus movement between the widget buttons
	ActionFocusNext Action = "focus_next"
	ActionFocusPrev Action = "focus_prev"
	ActionActivate  Action = "activate" // enter/space - press focused button

	// Widget buttons
	ActionPlay   Action = "play"
	ActionCancel Action = "cancel"
	ActionSpeed  Action = "speed"

	// Owner actions
	ActionReplay Action = "replay"
)
