// Package app is the owner of the playback widget: it routes widget
// presses to the player and pushes playback progress back to the widget.
package app

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/reviewaudio/internal/errmsg"
	"github.com/llehouerou/reviewaudio/internal/keymap"
	"github.com/llehouerou/reviewaudio/internal/player"
	"github.com/llehouerou/reviewaudio/internal/prefs"
	"github.com/llehouerou/reviewaudio/internal/speed"
	"github.com/llehouerou/reviewaudio/internal/ui/playview"
)

// DefaultTick is the progress refresh interval when none is configured.
const DefaultTick = 100 * time.Millisecond

// headerHeight is the number of rows above the widget.
const headerHeight = 2

// Model is the root application model.
type Model struct {
	PlayView playview.Model
	Player   player.Interface
	Prefs    prefs.Store
	Keys     *keymap.Resolver

	Path     string
	FileSize int64
	Status   string
	Tick     time.Duration

	tickGen int
	events  chan tea.Msg
	Width   int
	Height  int
}

// New creates the application for the recording at path.
// A tick of zero uses DefaultTick.
func New(path string, p player.Interface, store prefs.Store, tick time.Duration) Model {
	if tick <= 0 {
		tick = DefaultTick
	}

	m := Model{
		PlayView: playview.New(store),
		Player:   p,
		Prefs:    store,
		Keys:     keymap.Default(),
		Path:     path,
		Tick:     tick,
		events:   make(chan tea.Msg, 8),
	}
	m.PlayView.SetFocused(true)

	if info, err := os.Stat(path); err != nil {
		m.Status = errmsg.FormatWith(errmsg.OpFileLoad, filepath.Base(path), err)
		log.Warn("recording not readable", "path", path, "err", err)
	} else {
		m.FileSize = info.Size()
	}

	events := m.events
	p.OnCompletion(func() { notify(events, CompletedMsg{}) })
	p.OnError(func(err error) { notify(events, FailedMsg{Err: err}) })

	m.PlayView.SetSpeedButtonListener(playview.SpeedButtonFunc(func(s string) {
		p.SetPlaybackSpeed(speed.Parse(s))
	}))

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.WatchEvents()
}

// WatchEvents returns a command that waits for the next player event.
func (m Model) WatchEvents() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// notify delivers msg from a player goroutine without blocking it.
func notify(events chan<- tea.Msg, msg tea.Msg) {
	select {
	case events <- msg:
	default:
		log.Debug("dropping player event", "msg", msg)
	}
}
