package playback

import (
	"errors"
	"sync"

	"github.com/llehouerou/streamview/internal/platform"
	"github.com/llehouerou/streamview/internal/player"
)

// ErrCompactUnsupported is returned by SetCompact(true) when the host has
// no graphical session to keep the video window alive.
var ErrCompactUnsupported = errors.New("compact mode not supported on this host")

// Lifecycle maps host lifecycle callbacks (surface ready, focus lost and
// regained, compact presentation, teardown) onto a Session.
type Lifecycle struct {
	mu      sync.Mutex
	session *Session
	caps    platform.Capabilities
	url     string
	compact bool

	keepPlayingInCompact bool
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// KeepPlayingInCompact sets whether Pause leaves playback running while in
// compact presentation. Defaults to true.
func KeepPlayingInCompact(keep bool) LifecycleOption {
	return func(l *Lifecycle) { l.keepPlayingInCompact = keep }
}

// NewLifecycle creates a lifecycle driving s with the configured url.
func NewLifecycle(s *Session, url string, caps platform.Capabilities, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		session:              s,
		url:                  url,
		caps:                 caps,
		keepPlayingInCompact: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Session returns the driven session.
func (l *Lifecycle) Session() *Session { return l.session }

// URL returns the URL resumed on focus.
func (l *Lifecycle) URL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url
}

// Compact reports whether compact presentation is on.
func (l *Lifecycle) Compact() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.compact
}

// SurfaceReady initializes the session if needed, attaches surf once and
// starts the configured URL.
func (l *Lifecycle) SurfaceReady(surf player.Surface) error {
	s := l.session
	if st := s.State(); st == StateUninitialized || st == StateReleased {
		if err := s.Initialize(); err != nil {
			return err
		}
	}
	if s.HasSurface() {
		return nil
	}
	if err := s.AttachSurface(surf); err != nil {
		return err
	}
	return s.Play(l.URL())
}

// Pause stops playback unless compact presentation keeps it visible.
func (l *Lifecycle) Pause() error {
	l.mu.Lock()
	keep := l.compact && l.keepPlayingInCompact
	l.mu.Unlock()
	if keep {
		return nil
	}
	return l.session.Stop()
}

// Resume plays the configured URL again if a surface is attached and
// nothing is playing or pending.
func (l *Lifecycle) Resume() error {
	s := l.session
	if s.State() == StateReleased || !s.HasSurface() || s.IsActive() {
		return nil
	}
	return s.Play(l.URL())
}

// SetCompact enters or leaves compact presentation. Entering resumes
// playback.
func (l *Lifecycle) SetCompact(on bool) error {
	if on && !l.caps.CompactMode {
		return ErrCompactUnsupported
	}
	l.mu.Lock()
	l.compact = on
	l.mu.Unlock()
	if on {
		return l.Resume()
	}
	return nil
}

// Open switches to url. Playback starts immediately when a surface is
// attached, otherwise on the next SurfaceReady.
func (l *Lifecycle) Open(url string) error {
	l.mu.Lock()
	l.url = url
	l.mu.Unlock()
	if !l.session.HasSurface() {
		return nil
	}
	return l.session.Play(url)
}

// ToggleRecording starts or stops recording and returns the new flag.
func (l *Lifecycle) ToggleRecording() (bool, error) {
	if on, _ := l.session.Recording(); on {
		err := l.session.StopRecording()
		on, _ = l.session.Recording()
		return on, err
	}
	return l.session.StartRecording(), nil
}

// Destroy releases the session unconditionally.
func (l *Lifecycle) Destroy() error {
	return l.session.Release()
}

// Stop stops playback regardless of presentation.
func (l *Lifecycle) Stop() error {
	return l.session.Stop()
}

// Snapshot returns the session snapshot.
func (l *Lifecycle) Snapshot() Snapshot {
	return l.session.Snapshot()
}
