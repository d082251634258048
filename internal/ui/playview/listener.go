package playview

// ButtonPressListener is notified of play and cancel presses.
type ButtonPressListener interface {
	OnPlayButtonPressed()
	OnCancelButtonPressed()
}

// SpeedButtonListener is notified with the new speed string after the
// speed button stored it.
type SpeedButtonListener interface {
	OnSpeedChanged(speed string)
}

// ButtonPressFuncs adapts two functions to a ButtonPressListener.
// Nil fields are skipped.
type ButtonPressFuncs struct {
	Play   func()
	Cancel func()
}

func (f ButtonPressFuncs) OnPlayButtonPressed() {
	if f.Play != nil {
		f.Play()
	}
}

func (f ButtonPressFuncs) OnCancelButtonPressed() {
	if f.Cancel != nil {
		f.Cancel()
	}
}

// SpeedButtonFunc adapts a function to a SpeedButtonListener.
type SpeedButtonFunc func(speed string)

func (f SpeedButtonFunc) OnSpeedChanged(speed string) { f(speed) }
