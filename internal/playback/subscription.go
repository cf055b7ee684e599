package playback

import "time"

const eventBufferSize = 16

// Subscription provides event channels for the session's subscriber.
type Subscription struct {
	StateChanged <-chan StateChange
	Playing      <-chan PlayingEvent
	Error        <-chan ErrorEvent
	Buffering    <-chan BufferingEvent
	Recording    <-chan RecordingEvent
	Done         <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	playingCh   chan PlayingEvent
	errorCh     chan ErrorEvent
	bufferingCh chan BufferingEvent
	recordingCh chan RecordingEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		playingCh:   make(chan PlayingEvent, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		bufferingCh: make(chan BufferingEvent, eventBufferSize),
		recordingCh: make(chan RecordingEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.Playing = s.playingCh
	s.Error = s.errorCh
	s.Buffering = s.bufferingCh
	s.Recording = s.recordingCh
	s.Done = s.doneCh
	return s
}

// close signals the subscriber to stop by closing doneCh. Events already
// buffered stay readable.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendPlaying sends a playing event (non-blocking).
func (s *Subscription) sendPlaying(e PlayingEvent) {
	select {
	case s.playingCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

// sendBuffering sends buffering progress (non-blocking).
func (s *Subscription) sendBuffering(percent float64) {
	select {
	case s.bufferingCh <- BufferingEvent{Percent: percent}:
	default:
	}
}

// sendRecording sends a recording event (non-blocking).
func (s *Subscription) sendRecording(e RecordingEvent) {
	select {
	case s.recordingCh <- e:
	default:
	}
}

// recordingDuration is split out so tests can reason about elapsed time.
func recordingDuration(started, now time.Time) time.Duration {
	if started.IsZero() || now.Before(started) {
		return 0
	}
	return now.Sub(started)
}
