package playback

import "time"

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// PlayingEvent is emitted when the engine confirms playback of URL.
type PlayingEvent struct {
	URL string
}

// ErrorEvent is emitted for every session error. Message is ready for
// display; Err carries the *Error for errors.Is checks.
type ErrorEvent struct {
	Message string
	Err     *Error
}

// BufferingEvent reports engine buffering progress. Informational only.
type BufferingEvent struct {
	Percent float64
}

// RecordingEvent is emitted when a recording starts or stops.
//
// Emitted by:
//   - StartRecording: Active=true
//   - StopRecording: Active=false, after the sink was flushed
//   - Stop/Play/Release while recording: Active=false, the sink was closed
//     together with the media binding
type RecordingEvent struct {
	Active    bool
	Path      string
	URL       string
	StartedAt time.Time
	Duration  time.Duration // set when Active is false
}
