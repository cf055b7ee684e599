// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamview/internal/errmsg"
	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/recording"
	"github.com/llehouerou/streamview/internal/stderr"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchSessionEvents returns a command that waits for the next session
// event and converts it to a tea.Msg.
func (m Model) WatchSessionEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return SessionStateMsg(e)
		case e := <-sub.Playing:
			return SessionPlayingMsg(e)
		case e := <-sub.Error:
			return SessionErrorMsg(e)
		case e := <-sub.Buffering:
			return SessionBufferingMsg(e)
		case e := <-sub.Recording:
			return SessionRecordingMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchStderr returns a command that waits for stderr output from the media engine.
func WatchStderr() tea.Cmd {
	return waitForChannel(stderr.Messages, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil // Channel closed
		}
		return StderrMsg{Line: line}
	})
}

// FinalizeRecordingCmd tags a recording that has just been closed.
func FinalizeRecordingCmd(ev playback.RecordingEvent) tea.Cmd {
	return func() tea.Msg {
		info, err := recording.Finalize(ev.Path, recording.Meta{
			URL:       ev.URL,
			StartedAt: ev.StartedAt,
			Duration:  ev.Duration,
		})
		return RecordingFinalizedMsg{
			Path:      ev.Path,
			URL:       ev.URL,
			StartedAt: ev.StartedAt,
			Info:      info,
			Err:       err,
		}
	}
}

// opCmd runs fn off the update loop and reports its error as op.
func opCmd(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{op: op, err: fn()}
	}
}

// startCmd attaches the video output, starts the configured stream and
// optionally enters compact presentation.
func (m Model) startCmd() tea.Cmd {
	l, surf := m.lifecycle, m.surface
	compact := m.compactOnStart && m.caps.CompactMode
	return func() tea.Msg {
		if err := l.SurfaceReady(surf); err != nil {
			return opResultMsg{op: errmsg.OpInitialize, err: err}
		}
		if compact {
			return opResultMsg{op: errmsg.OpCompactMode, err: l.SetCompact(true)}
		}
		return opResultMsg{op: errmsg.OpInitialize}
	}
}
