package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/reviewaudio/internal/errmsg"
	"github.com/llehouerou/reviewaudio/internal/icons"
	"github.com/llehouerou/reviewaudio/internal/keymap"
	"github.com/llehouerou/reviewaudio/internal/speed"
	"github.com/llehouerou/reviewaudio/internal/ui/action"
	"github.com/llehouerou/reviewaudio/internal/ui/playview"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.PlayView.SetSize(msg.Width, playview.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		msg.Y -= headerHeight
		return m.updateView(msg)

	case action.Msg:
		return m.handleAction(msg)

	case PreparedMsg:
		return m.handlePrepared()

	case CompletedMsg:
		return m.handleCompleted()

	case FailedMsg:
		return m.handleFailed(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m.updateView(msg)
}

func (m Model) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.PlayView, cmd = m.PlayView.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Keys.Resolve(msg.String()) { //nolint:exhaustive // widget keys go to the view
	case keymap.ActionQuit:
		m.stopTicking()
		_ = m.Player.Close()
		return m, tea.Quit
	case keymap.ActionReplay:
		return m.replay()
	}
	return m.updateView(msg)
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	if !msg.From(playview.Source) {
		return m, nil
	}

	switch a := msg.Action.(type) {
	case playview.PlayPressed:
		return m.handlePlay()
	case playview.CancelPressed:
		return m.handleCancel()
	case playview.SpeedChanged:
		m.Status = "Speed " + speed.Label(a.Speed)
		log.Debug("speed changed", "speed", a.Speed, "playing", m.Player.IsPlaying())
	}
	return m, nil
}

// handlePlay restarts audio that is playing, and starts it otherwise.
func (m Model) handlePlay() (tea.Model, tea.Cmd) {
	if m.Player.IsPlaying() {
		return m.replay()
	}

	events := m.events
	m.Player.Play(m.Path, func() { notify(events, PreparedMsg{}) })
	m.Status = "Loading…"
	return m, m.PlayView.ChangePlayIcon(icons.Replay)
}

func (m Model) replay() (tea.Model, tea.Cmd) {
	if !m.Player.State().CanReplay() {
		return m, nil
	}

	wasPlaying := m.Player.IsPlaying()
	m.Player.Replay()
	progress := m.PlayView.SetPlaybackProgress(0)

	if wasPlaying {
		return m, tea.Batch(progress, m.PlayView.RotateReplayIcon())
	}
	// Finished audio restarts, so the progress loop starts again
	return m, tea.Batch(progress, m.PlayView.ChangePlayIcon(icons.Replay), m.startTicking())
}

func (m Model) handleCancel() (tea.Model, tea.Cmd) {
	m.stopTicking()
	// An idle player keeps its status, e.g. a load failure
	if m.Player.State().IsActive() {
		m.Status = "Stopped"
	}
	_ = m.Player.Close()
	return m, tea.Batch(m.PlayView.SetPlaybackProgress(0), m.PlayView.ChangePlayIcon(icons.Play))
}

func (m Model) handlePrepared() (tea.Model, tea.Cmd) {
	d := m.Player.Duration()
	m.PlayView.SetPlaybackProgressBarMax(int(d.Milliseconds()))
	m.PlayView.SetPlaybackProgress(0)
	m.Status = ""
	log.Debug("recording prepared", "duration", d)

	return m, tea.Batch(m.startTicking(), m.WatchEvents())
}

func (m Model) handleCompleted() (tea.Model, tea.Cmd) {
	m.stopTicking()
	return m, tea.Batch(
		m.PlayView.SetPlaybackProgress(m.PlayView.Max()),
		m.PlayView.ChangePlayIcon(icons.Play),
		m.WatchEvents(),
	)
}

func (m Model) handleFailed(msg FailedMsg) (tea.Model, tea.Cmd) {
	m.stopTicking()
	m.Status = errmsg.FormatWith(errmsg.OpPlaybackStart, filepath.Base(m.Path), msg.Err)
	return m, tea.Batch(
		m.PlayView.SetPlaybackProgress(0),
		m.PlayView.ChangePlayIcon(icons.Play),
		m.WatchEvents(),
	)
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen || !m.Player.IsPlaying() {
		return m, nil
	}

	pos := int(m.Player.Position().Milliseconds())
	return m, tea.Batch(m.PlayView.SetPlaybackProgress(pos), TickCmd(m.tickGen, m.Tick))
}
