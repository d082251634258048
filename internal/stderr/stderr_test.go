//go:build unix

package stderr

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_ForwardsLines(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)

	c, err := Start(func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	require.NoError(t, err)

	_, err = os.Stderr.WriteString("ALSA lib pcm.c: underrun\n\n   \nsecond line\n")
	require.NoError(t, err)

	c.Stop()
	c.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second line"}, lines)
}

func TestStart_OnlyOneCapture(t *testing.T) {
	c, err := Start(nil)
	require.NoError(t, err)

	_, err = Start(nil)
	assert.ErrorIs(t, err, ErrActive)

	c.Stop()

	// Stopping frees the slot
	again, err := Start(nil)
	require.NoError(t, err)
	again.Stop()
}

func TestNilCaptureStop(t *testing.T) {
	var c *Capture
	c.Stop()
}
