package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reviewaudio/internal/app"
	"github.com/llehouerou/reviewaudio/internal/config"
	"github.com/llehouerou/reviewaudio/internal/errmsg"
	"github.com/llehouerou/reviewaudio/internal/icons"
	"github.com/llehouerou/reviewaudio/internal/logging"
	"github.com/llehouerou/reviewaudio/internal/media"
	"github.com/llehouerou/reviewaudio/internal/player"
	"github.com/llehouerou/reviewaudio/internal/prefs"
	"github.com/llehouerou/reviewaudio/internal/stderr"
	"github.com/llehouerou/reviewaudio/internal/ui/styles"
)

var (
	configPath string
	memory     bool
	logLevel   string

	rootCmd = &cobra.Command{
		Use:           "reviewaudio [flags] <recording>",
		Short:         "Listen back to a recorded answer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "extra config file, read after the defaults")
	rootCmd.Flags().BoolVar(&memory, "memory", false, "keep preferences in memory only")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Deferred cleanup in run has restored stderr by now
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	var extra []string
	if configPath != "" {
		extra = append(extra, configPath)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if memory {
		cfg.Prefs.Backend = prefs.BackendMemory
	}

	logFile, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer logFile.Close()

	// Capture C library noise (ALSA) before the audio device opens
	capture, err := stderr.Start(func(line string) {
		log.Warn("captured stderr", "line", line)
	})
	if err != nil {
		log.Warn("could not capture stderr", "err", err)
	}
	defer capture.Stop()

	icons.Init(cfg.Icons)
	if err := styles.Apply(styles.Overrides{
		Accent:     cfg.Theme.Accent,
		Speed:      cfg.Theme.Speed,
		Background: cfg.Theme.Background,
	}); err != nil {
		log.Warn("ignoring theme overrides", "err", err)
	}

	store, err := prefs.Open(cfg.Prefs)
	if err != nil {
		return errmsg.Wrap(errmsg.OpPrefsOpen, err)
	}
	defer closeLogged("preferences", store)

	p := player.New(media.NewBeep(), store)
	defer closeLogged("player", p)

	tick := time.Duration(cfg.GetProgressConfig().TickMS) * time.Millisecond
	m := app.New(path, p, store, tick)

	log.Info("starting", "path", path, "prefs", cfg.Prefs.Backend)

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	return nil
}

func closeLogged(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn("close failed", "what", name, "err", err)
	}
}
