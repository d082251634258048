//go:build !unix

// Package stderr is a no-op outside unix; the audio backends there do
// not write to the console.
package stderr

// Capture does nothing on this platform.
type Capture struct{}

// Start returns a nil capture.
func Start(func(line string)) (*Capture, error) {
	return nil, nil //nolint:nilnil // nil capture is valid
}

// Stop is a no-op.
func (c *Capture) Stop() {}
