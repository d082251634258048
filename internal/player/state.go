package player

// State is the player state as seen by its owner.
//
//	┌──────┐   Play   ┌───────────┐  prepared  ┌─────────┐
//	│ Idle │ ───────▶ │ Preparing │ ─────────▶ │ Playing │
//	└──────┘          └───────────┘            └─────────┘
//	   ▲                   │ error                │    ▲
//	   │                   ▼                      │    │ Replay
//	   └──────────────── Close ◀──────────────────┤    │
//	                                   completion ▼    │
//	                                           ┌───────┐
//	                                           │ Ready │
//	                                           └───────┘
//
// Close returns to Idle from every state. SetPlaybackSpeed only acts
// in Playing.
type State int

const (
	Idle State = iota
	Preparing
	Playing
	Ready
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Preparing:
		return "Preparing"
	case Playing:
		return "Playing"
	case Ready:
		return "Ready"
	default:
		return "Unknown"
	}
}

// CanReplay returns true if Replay would restart audio.
func (s State) CanReplay() bool {
	return s == Playing || s == Ready
}

// IsActive returns true if a file is loaded or loading.
func (s State) IsActive() bool {
	return s != Idle
}
