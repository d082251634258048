// Command probe decodes a recording through the playback stack and prints
// what it found, optionally playing it at a given speed.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reviewaudio/internal/media"
	"github.com/llehouerou/reviewaudio/internal/player"
	"github.com/llehouerou/reviewaudio/internal/prefs"
	"github.com/llehouerou/reviewaudio/internal/speed"
)

var (
	play    bool
	rate    string
	timeout time.Duration

	rootCmd = &cobra.Command{
		Use:          "probe [flags] <file>",
		Short:        "Check that a recording decodes and plays",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         probe,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&play, "play", "p", false, "play the file to the end")
	rootCmd.Flags().StringVarP(&rate, "speed", "s", speed.Default, "playback speed when playing")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for preparation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func probe(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !speed.Valid(rate) {
		return fmt.Errorf("invalid speed %q", rate)
	}

	store := prefs.NewMemory()
	if err := store.PutString(prefs.KeyAudioPlaybackSpeed, rate); err != nil {
		return err
	}

	p := player.New(media.NewBeep(), store)
	defer p.Close()

	prepared := make(chan struct{})
	done := make(chan struct{})
	failed := make(chan error, 1)
	p.OnCompletion(func() { close(done) })
	p.OnError(func(err error) { failed <- err })
	p.Play(path, func() { close(prepared) })

	select {
	case <-prepared:
	case err := <-failed:
		return err
	case <-time.After(timeout):
		return errors.New("timed out waiting for preparation")
	}

	log.Info("prepared",
		"path", path,
		"size", humanize.IBytes(uint64(info.Size())), //nolint:gosec // size is non-negative
		"duration", p.Duration().Round(time.Millisecond),
		"speed", p.PlaybackSpeed(),
	)

	if !play {
		return nil
	}

	start := time.Now()
	<-done
	log.Info("finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
