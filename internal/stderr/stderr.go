//go:build unix

// Package stderr captures output that C libraries (ALSA, oto) write
// straight to file descriptor 2, so it does not corrupt the TUI.
package stderr

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// ErrActive is returned by Start while another capture is running.
var ErrActive = errors.New("stderr capture already active")

var active atomic.Bool

// Capture redirects fd 2 into a pipe until Stop is called.
// A nil *Capture is valid and does nothing.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
	stop sync.Once
}

// Start redirects fd 2 and passes each non-empty captured line to handle
// on a background goroutine. Call it before the audio device is opened.
// On error nothing is redirected and the program can carry on without it.
func Start(handle func(line string)) (*Capture, error) {
	if !active.CompareAndSwap(false, true) {
		return nil, ErrActive
	}

	c, err := redirect()
	if err != nil {
		active.Store(false)
		return nil, err
	}

	go c.forward(handle)
	return c, nil
}

func redirect() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	return &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}, nil
}

func (c *Capture) forward(handle func(string)) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && handle != nil {
			handle(line)
		}
	}
}

// Stop restores fd 2 and waits until every captured line was handled.
// Safe to call more than once.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	c.stop.Do(func() {
		_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = unix.Close(c.orig)

		// fd 2 no longer refers to the pipe, so this is the last writer
		c.w.Close()
		<-c.done
		c.r.Close()

		active.Store(false)
	})
}
