package app

import "time"

// PreparedMsg is sent when the player finished preparing and started.
type PreparedMsg struct{}

// CompletedMsg is sent when playback reached the end of the recording.
type CompletedMsg struct{}

// FailedMsg is sent when the recording could not be opened or decoded.
type FailedMsg struct {
	Err error
}

// TickMsg refreshes the progress bar while audio plays.
type TickMsg struct {
	Gen  int
	Time time.Time
}
