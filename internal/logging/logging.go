// Package logging points the process-wide logger at a file, since the
// terminal belongs to the TUI while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const (
	appName     = "reviewaudio"
	logFileName = "reviewaudio.log"
)

// Setup opens path for appending (the XDG state file when empty) and makes
// it the destination of the default logger at the given level. An unknown
// level falls back to info. The returned closer releases the file.
func Setup(path, level string) (io.Closer, error) {
	if path == "" {
		p, err := xdg.StateFile(filepath.Join(appName, logFileName))
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	lvl, levelErr := log.ParseLevel(level)
	if levelErr != nil {
		lvl = log.InfoLevel
	}

	log.SetDefault(New(f, lvl))

	if levelErr != nil {
		log.Warn("unknown log level, using info", "level", level)
	}
	log.Debug("logging initialized", "path", path, "level", lvl)

	return f, nil
}

// New creates a timestamped logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}
