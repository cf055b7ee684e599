// Package app contains the terminal front end that drives a playback
// lifecycle: messages, commands, update and view.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamview/internal/errmsg"
	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/recording"
)

// SessionMessage is implemented by messages converted from session
// subscription events, so Update can route them as one category.
type SessionMessage interface {
	tea.Msg
	sessionMessage()
}

// TickMsg is sent once per second to refresh the recording clock.
type TickMsg time.Time

// SessionStateMsg is sent when the session changes state.
type SessionStateMsg playback.StateChange

func (SessionStateMsg) sessionMessage() {}

// SessionPlayingMsg is sent when the engine confirms playback.
type SessionPlayingMsg playback.PlayingEvent

func (SessionPlayingMsg) sessionMessage() {}

// SessionErrorMsg is sent for every failure the session reports.
type SessionErrorMsg playback.ErrorEvent

func (SessionErrorMsg) sessionMessage() {}

// SessionBufferingMsg carries network buffer fill.
type SessionBufferingMsg playback.BufferingEvent

func (SessionBufferingMsg) sessionMessage() {}

// SessionRecordingMsg is sent when a recording starts or ends.
type SessionRecordingMsg playback.RecordingEvent

func (SessionRecordingMsg) sessionMessage() {}

// SessionClosedMsg is sent when the subscription is closed.
type SessionClosedMsg struct{}

func (SessionClosedMsg) sessionMessage() {}

// StderrMsg is sent when the media engine writes to stderr.
type StderrMsg struct {
	Line string
}

// RecordingFinalizedMsg is sent once a finished recording has been tagged.
type RecordingFinalizedMsg struct {
	Path      string
	URL       string
	StartedAt time.Time
	Info      recording.Info
	Err       error
}

// opResultMsg reports the outcome of a lifecycle call run off the update loop.
type opResultMsg struct {
	op  errmsg.Op
	err error
}
