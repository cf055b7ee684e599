package playback

import (
	"time"

	"github.com/llehouerou/streamview/internal/errmsg"
	"github.com/llehouerou/streamview/internal/player"
)

// StartRecording adds a recording sink to the current media binding without
// restarting playback. It returns false and reports a RecordingError when
// nothing is playing.
func (s *Session) StartRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying || s.media == nil {
		s.failLocked(newError(KindRecording, errmsg.OpRecordingStart, errNotPlaying))
		return false
	}
	if s.recording {
		return true
	}

	now := time.Now()
	path, err := s.nextRecordingPath(now)
	if err != nil {
		s.failLocked(newError(KindRecording, errmsg.OpRecordingStart, err))
		return false
	}
	if err := guard(func() error { return s.engine.AddMediaOption(player.RecordTo(path)) }); err != nil {
		s.failLocked(newError(KindRecording, errmsg.OpRecordingStart, err))
		return false
	}

	s.recording = true
	s.recordingPath = path
	s.recordingStarted = now
	if s.sub != nil {
		s.sub.sendRecording(RecordingEvent{
			Active:    true,
			Path:      path,
			URL:       s.currentURL,
			StartedAt: now,
		})
	}
	s.log.Info("playback: recording started", "path", path)
	return true
}

// StopRecording stops the engine so the sink is flushed and closed, drops
// the sink from the binding and resumes playback. The session stays in
// Playing; the resume is confirmed by the engine like any other play.
func (s *Session) StopRecording() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReleased {
		return ErrReleased
	}
	if !s.recording {
		return nil
	}

	if err := guard(s.engine.Stop); err != nil {
		return s.failLocked(newError(KindRecording, errmsg.OpRecordingStop, err))
	}
	s.endRecordingLocked()

	err := guard(func() error {
		if err := s.engine.RemoveMediaOption(player.OptRecordTo); err != nil {
			return err
		}
		return s.engine.Play()
	})
	if err != nil {
		// The engine is stopped now; reflect that instead of pretending.
		s.pending = false
		s.setStateLocked(StateStopped)
		return s.failLocked(newError(KindPlayback, errmsg.OpPlaybackStart, err))
	}
	s.pending = true
	return nil
}

// Recording returns whether a recording is active and its path.
func (s *Session) Recording() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording, s.recordingPath
}

// dropRecordingLocked removes the sink from the binding and ends the
// recording, so a later play of the same binding does not write to it again.
func (s *Session) dropRecordingLocked() {
	if !s.recording {
		return
	}
	if err := guard(func() error { return s.engine.RemoveMediaOption(player.OptRecordTo) }); err != nil {
		s.log.Warn("playback: failed to remove recording sink", "error", err)
	}
	s.endRecordingLocked()
}

// endRecordingLocked clears the recording flag and notifies the subscriber.
// The caller has already closed the sink (or is replacing the binding).
func (s *Session) endRecordingLocked() {
	if !s.recording {
		return
	}
	now := time.Now()
	ev := RecordingEvent{
		Active:    false,
		Path:      s.recordingPath,
		URL:       s.currentURL,
		StartedAt: s.recordingStarted,
		Duration:  recordingDuration(s.recordingStarted, now),
	}
	s.recording = false
	s.recordingPath = ""
	s.recordingStarted = time.Time{}
	if s.sub != nil {
		s.sub.sendRecording(ev)
	}
	s.log.Info("playback: recording stopped", "path", ev.Path, "duration", ev.Duration)
}
