// internal/playback/session.go
package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/llehouerou/streamview/internal/errmsg"
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/recording"
)

// Session owns one media engine bound to at most one surface and one media
// URL. Commands come from the host goroutine; engine events are drained by a
// pump goroutine. All state lives behind mu.
type Session struct {
	mu sync.Mutex

	newEngine         player.Factory
	engineOpts        player.Options
	mediaOpts         []player.MediaOption
	nextRecordingPath func(time.Time) (string, error)
	log               *slog.Logger

	state      State
	engine     player.Interface
	engineGen  uint64
	pumpStop   chan struct{}
	surface    player.Surface
	media      *player.Media
	currentURL string
	pending    bool // play requested, engine has not confirmed yet

	recording        bool
	recordingPath    string
	recordingStarted time.Time

	sub *Subscription
}

// Option configures a Session.
type Option func(*Session)

// WithEngineOptions sets the options engines are constructed with.
func WithEngineOptions(o player.Options) Option {
	return func(s *Session) { s.engineOpts = o }
}

// WithMediaOptions replaces the per-source options added to every binding.
func WithMediaOptions(opts ...player.MediaOption) Option {
	return func(s *Session) { s.mediaOpts = opts }
}

// WithRecordingPaths sets how recording destinations are chosen.
func WithRecordingPaths(next func(time.Time) (string, error)) Option {
	return func(s *Session) { s.nextRecordingPath = next }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New creates an uninitialized session that allocates engines with factory.
func New(factory player.Factory, opts ...Option) *Session {
	s := &Session{
		newEngine:  factory,
		engineOpts: player.DefaultOptions(),
		log:        slog.Default(),
		nextRecordingPath: recording.Namer{
			Dir:    recording.DefaultDir(),
			Prefix: recording.DefaultPrefix,
		}.Next,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mediaOpts == nil {
		s.mediaOpts = append(
			[]player.MediaOption{player.NetworkCaching(s.engineOpts.NetworkCaching)},
			player.NoClockSync()...,
		)
	}
	return s
}

// Subscribe registers the session's single subscriber, replacing (and
// closing) the previous one.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.close()
	}
	s.sub = newSubscription()
	return s.sub
}

// Initialize allocates the engine. It is a no-op once initialized, and
// recreates a fresh engine after Release.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized && s.state != StateReleased {
		return nil
	}

	var eng player.Interface
	err := guard(func() error {
		var err error
		eng, err = s.newEngine(s.engineOpts)
		return err
	})
	if err == nil && eng == nil {
		err = errors.New("engine factory returned nil")
	}
	if err != nil {
		return s.failLocked(newError(KindInit, errmsg.OpEngineInit, err))
	}

	s.engine = eng
	s.engineGen++
	s.pumpStop = make(chan struct{})
	s.surface = nil
	s.media = nil
	s.currentURL = ""
	s.pending = false
	s.setStateLocked(StateInitialized)

	go s.pump(s.engineGen, eng.Events(), s.pumpStop)

	s.log.Info("playback: engine initialized", "options", s.engineOpts.Args())
	return nil
}

// AttachSurface binds the engine video output to surf. Attaching when a
// surface is already bound is a no-op.
func (s *Session) AttachSurface(surf player.Surface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateReleased:
		return ErrReleased
	case !s.state.HasEngine():
		return s.failLocked(newError(KindAttach, errmsg.OpSurfaceAttach, errNotInitialized))
	case surf == nil:
		return s.failLocked(newError(KindAttach, errmsg.OpSurfaceAttach, errNilSurface))
	case s.surface != nil:
		return nil
	}

	if err := guard(func() error { return s.engine.AttachOutput(surf) }); err != nil {
		return s.failLocked(newError(KindAttach, errmsg.OpSurfaceAttach, err))
	}

	s.surface = surf
	if s.state == StateInitialized {
		s.setStateLocked(StateSurfaceAttached)
	}
	s.log.Debug("playback: surface attached", "sink", surf.VideoSink())
	return nil
}

// Play replaces the media binding with url and requests playback. The
// session enters Playing only when the engine confirms it.
func (s *Session) Play(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	url = strings.TrimSpace(url)
	switch {
	case s.state == StateReleased:
		return ErrReleased
	case url == "":
		return s.failLocked(newError(KindInvalidURL, errmsg.OpPlaybackStart, errBlankURL))
	case !s.state.HasEngine():
		return s.failLocked(newError(KindPlayback, errmsg.OpPlaybackStart, errNotInitialized))
	case !s.state.CanPlay():
		return s.failLocked(newError(KindPlayback, errmsg.OpPlaybackStart, errNoSurface))
	}

	media := player.NewMedia(url, s.mediaOpts...)
	err := guard(func() error {
		if err := s.engine.SetMedia(media); err != nil {
			return err
		}
		return s.engine.Play()
	})
	if err != nil {
		return s.failLocked(newError(KindPlayback, errmsg.OpPlaybackStart, err))
	}

	// The replaced binding carried the recording sink.
	s.endRecordingLocked()

	s.media = media
	s.currentURL = url
	s.pending = true
	s.log.Info("playback: play requested", "url", media.Redacted(), "media_id", media.ID)
	return nil
}

// Stop stops playback and cancels a pending play. It is a no-op when
// nothing is playing.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReleased {
		return ErrReleased
	}
	if s.state != StatePlaying && !s.pending {
		return nil
	}

	if err := guard(func() error {
		if !s.engine.IsPlaying() {
			return nil
		}
		return s.engine.Stop()
	}); err != nil {
		return s.failLocked(newError(KindPlayback, errmsg.OpPlaybackStop, err))
	}

	s.pending = false
	s.dropRecordingLocked()
	if s.state == StatePlaying {
		s.setStateLocked(StateStopped)
	}
	return nil
}

// Release stops playback, unbinds the surface and destroys the engine.
// It always succeeds and is idempotent.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReleased {
		return nil
	}

	if eng := s.engine; eng != nil {
		if err := guard(func() error {
			if !eng.IsPlaying() {
				return nil
			}
			return eng.Stop()
		}); err != nil {
			s.log.Warn("playback: stop during release failed", "error", err)
		}
		if s.surface != nil {
			if err := guard(eng.DetachOutput); err != nil {
				s.log.Warn("playback: detach during release failed", "error", err)
			}
		}
		if err := guard(eng.Release); err != nil {
			s.log.Warn("playback: engine release failed", "error", err)
		}
	}
	if s.pumpStop != nil {
		close(s.pumpStop)
		s.pumpStop = nil
	}

	s.endRecordingLocked()
	s.engine = nil
	s.engineGen++
	s.surface = nil
	s.media = nil
	s.pending = false
	s.setStateLocked(StateReleased)

	s.log.Info("playback: session released")
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentURL returns the most recently requested media URL.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentURL
}

// HasSurface returns true if a surface is bound.
func (s *Session) HasSurface() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface != nil
}

// IsActive returns true if playing or a play is pending confirmation.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StatePlaying || s.pending
}

// Snapshot is a consistent view of the session for rendering.
type Snapshot struct {
	State          State
	URL            string
	Pending        bool
	HasSurface     bool
	Recording      bool
	RecordingPath  string
	RecordingSince time.Time
}

// Snapshot returns the session state in one locked read.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:          s.state,
		URL:            s.currentURL,
		Pending:        s.pending,
		HasSurface:     s.surface != nil,
		Recording:      s.recording,
		RecordingPath:  s.recordingPath,
		RecordingSince: s.recordingStarted,
	}
}

func (s *Session) pump(gen uint64, events <-chan player.Event, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleEngineEvent(gen, ev)
		}
	}
}

// handleEngineEvent applies one engine event. Events from a released engine
// or a replaced media binding are dropped.
func (s *Session) handleEngineEvent(gen uint64, ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.engineGen || s.media == nil || ev.MediaID != s.media.ID {
		s.log.Debug("playback: dropping stale engine event", "type", ev.Type.String())
		return
	}

	switch ev.Type {
	case player.EventPlaying:
		// Not pending means Stop superseded the request, or a duplicate.
		if !s.pending {
			return
		}
		s.pending = false
		s.setStateLocked(StatePlaying)
		if s.sub != nil {
			s.sub.sendPlaying(PlayingEvent{URL: s.currentURL})
		}

	case player.EventEncounteredError:
		cause := ev.Err
		if cause == nil {
			cause = errPlaybackFault
		}
		s.pending = false
		s.dropRecordingLocked()
		s.failLocked(newError(KindPlayback, errmsg.OpPlayback, cause))

	case player.EventEndReached:
		// EOS already flushed the sink.
		s.pending = false
		s.dropRecordingLocked()
		s.failLocked(newError(KindStreamEnded, errmsg.OpPlayback, errStreamEnded))

	case player.EventBuffering:
		if s.sub != nil {
			s.sub.sendBuffering(ev.Buffering)
		}
	}
}

func (s *Session) setStateLocked(next State) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next
	s.log.Debug("playback: state changed", "from", prev.String(), "to", next.String())
	if s.sub != nil {
		s.sub.sendState(StateChange{Previous: prev, Current: next})
	}
}

// failLocked reports e to the subscriber and returns it. State is left as is.
func (s *Session) failLocked(e *Error) *Error {
	s.log.Warn("playback: "+e.Kind.String(), "error", e.Error())
	if s.sub != nil {
		s.sub.sendError(ErrorEvent{Message: e.Error(), Err: e})
	}
	return e
}

// guard turns a panic in an engine call into an error so a native fault
// cannot take the host down.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine fault: %v", r)
		}
	}()
	return fn()
}
