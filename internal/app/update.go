// internal/app/update.go
package app

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamview/internal/errmsg"
	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/ui/textinput"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The open prompt owns the keyboard while shown.
	if key, ok := msg.(tea.KeyMsg); ok && m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(key)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.Focused = true
		return m.handleFocus()

	case tea.BlurMsg:
		m.Focused = false
		return m.handleBlur()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SessionMessage:
		return m.handleSessionMessage(msg)

	case textinput.ResultMsg:
		if msg.Canceled || msg.Text == "" {
			return m, nil
		}
		l, url := m.lifecycle, msg.Text
		m.StatusMsg = "Opening " + url
		return m, opCmd(errmsg.OpPlayback, func() error { return l.Open(url) })

	case RecordingFinalizedMsg:
		m.handleRecordingFinalized(msg)
		return m, nil

	case StderrMsg:
		m.stderrLine = msg.Line
		return m, WatchStderr()

	case opResultMsg:
		m.handleOpResult(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		m.snap = m.lifecycle.Snapshot()
		return m, TickCmd()
	}

	// Cursor blink and other prompt internals.
	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.lifecycle

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case " ":
		return m, m.togglePlayback()

	case "s":
		return m, opCmd(errmsg.OpPlaybackStop, l.Stop)

	case "r":
		return m, opCmd(errmsg.OpRecordingStart, func() error {
			_, err := l.ToggleRecording()
			return err
		})

	case "c":
		m.autoCompact = false
		on := !l.Compact()
		return m, opCmd(errmsg.OpCompactMode, func() error { return l.SetCompact(on) })

	case "o":
		cmd := m.prompt.Start("Open stream", l.URL(), m.Width-4, m.suggestions()...)
		return m, cmd

	case "esc":
		m.ErrorMsg = ""
		return m, nil
	}

	return m, nil
}

// handleBlur keeps the stream visible in compact mode when the host supports
// it. Otherwise the lifecycle pauses.
func (m Model) handleBlur() (tea.Model, tea.Cmd) {
	l := m.lifecycle
	if !m.compactOnBlur || !m.caps.CompactMode || l.Compact() {
		return m, opCmd(errmsg.OpPlaybackStop, l.Pause)
	}
	m.autoCompact = true
	return m, opCmd(errmsg.OpCompactMode, func() error {
		if err := l.SetCompact(true); err != nil {
			return err
		}
		return l.Pause()
	})
}

// handleFocus leaves a compact mode entered on blur and resumes playback.
func (m Model) handleFocus() (tea.Model, tea.Cmd) {
	l := m.lifecycle
	if !m.autoCompact {
		return m, opCmd(errmsg.OpPlaybackStart, l.Resume)
	}
	m.autoCompact = false
	return m, opCmd(errmsg.OpCompactMode, func() error {
		if err := l.SetCompact(false); err != nil {
			return err
		}
		return l.Resume()
	})
}

// togglePlayback stops an active stream, or resumes it. Without an
// attached output (startup failed) it retries the whole start sequence.
func (m Model) togglePlayback() tea.Cmd {
	l, surf := m.lifecycle, m.surface
	s := l.Session()
	switch {
	case s.IsActive():
		return opCmd(errmsg.OpPlaybackStop, l.Stop)
	case !s.HasSurface():
		return opCmd(errmsg.OpInitialize, func() error { return l.SurfaceReady(surf) })
	default:
		return opCmd(errmsg.OpPlaybackStart, l.Resume)
	}
}

// quit releases the session and finalizes a recording that was still
// running, since the program exits before its end event is handled.
func (m Model) quit() (tea.Model, tea.Cmd) {
	snap := m.lifecycle.Snapshot()
	m.saveSession()
	if err := m.lifecycle.Destroy(); err != nil {
		m.log.Warn("release on quit failed", "error", err)
	}
	if snap.Recording {
		ev := playback.RecordingEvent{
			Path:      snap.RecordingPath,
			URL:       snap.URL,
			StartedAt: snap.RecordingSince,
			Duration:  m.now().Sub(snap.RecordingSince),
		}
		if msg, ok := FinalizeRecordingCmd(ev)().(RecordingFinalizedMsg); ok {
			m.handleRecordingFinalized(msg)
		}
	}
	return m, tea.Quit
}

func (m Model) handleSessionMessage(msg SessionMessage) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case SessionStateMsg:
		m.snap = m.lifecycle.Snapshot()
		if msg.Current != playback.StatePlaying {
			m.buffering = 0
		}

	case SessionPlayingMsg:
		m.snap = m.lifecycle.Snapshot()
		m.buffering = 0
		m.ErrorMsg = ""
		m.recordPlayed(msg.URL)

	case SessionErrorMsg:
		m.snap = m.lifecycle.Snapshot()
		m.ErrorMsg = msg.Message
		if msg.Err != nil && (msg.Err.Kind == playback.KindPlayback || msg.Err.Kind == playback.KindStreamEnded) {
			m.sendStreamErrorNotification(msg.Message)
		}

	case SessionBufferingMsg:
		m.buffering = msg.Percent

	case SessionRecordingMsg:
		m.snap = m.lifecycle.Snapshot()
		if msg.Active {
			m.StatusMsg = "Recording to " + filepath.Base(msg.Path)
		} else {
			m.StatusMsg = "Finalizing " + filepath.Base(msg.Path)
			cmd = FinalizeRecordingCmd(playback.RecordingEvent(msg))
		}

	case SessionClosedMsg:
		return m, nil
	}

	return m, tea.Batch(cmd, m.WatchSessionEvents())
}

func (m *Model) handleRecordingFinalized(msg RecordingFinalizedMsg) {
	if msg.Info.Size == 0 {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpRecordingFinalize, filepath.Base(msg.Path), msg.Err)
		m.log.Error("recording finalize failed", "path", msg.Path, "error", msg.Err)
		return
	}
	if msg.Err != nil {
		m.log.Warn("recording saved without tags", "path", msg.Path, "error", msg.Err)
	}
	m.StatusMsg = "Saved " + filepath.Base(msg.Info.Path) + " (" + msg.Info.String() + ")"
	m.sendRecordingSavedNotification(msg.Info)
	m.logRecording(msg)
}

// handleOpResult surfaces failures of lifecycle calls. Session errors were
// already delivered as events and are not reported twice.
func (m *Model) handleOpResult(msg opResultMsg) {
	m.snap = m.lifecycle.Snapshot()
	if msg.err == nil {
		if msg.op == errmsg.OpCompactMode {
			m.saveSession()
		}
		return
	}
	var sessErr *playback.Error
	if errors.As(msg.err, &sessErr) {
		return
	}
	m.ErrorMsg = errmsg.Format(msg.op, msg.err)
	m.log.Warn("operation failed", "op", string(msg.op), "error", msg.err)
}
