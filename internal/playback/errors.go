package playback

import (
	"errors"

	"github.com/llehouerou/streamview/internal/errmsg"
)

// ErrorKind classifies session errors.
type ErrorKind int

const (
	KindInit ErrorKind = iota + 1
	KindAttach
	KindInvalidURL
	KindPlayback
	KindStreamEnded
	KindRecording
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "InitError"
	case KindAttach:
		return "AttachError"
	case KindInvalidURL:
		return "InvalidURLError"
	case KindPlayback:
		return "PlaybackError"
	case KindStreamEnded:
		return "StreamEndedError"
	case KindRecording:
		return "RecordingError"
	default:
		return "UnknownError"
	}
}

// Error is a session error carrying its kind and the failed operation.
type Error struct {
	Kind ErrorKind
	Op   errmsg.Op
	Err  error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	switch {
	case e.Kind == KindStreamEnded:
		return errStreamEnded.Error()
	case e.Err == nil:
		return e.Kind.String()
	default:
		return errmsg.Format(e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInit        = &Error{Kind: KindInit}
	ErrAttach      = &Error{Kind: KindAttach}
	ErrInvalidURL  = &Error{Kind: KindInvalidURL}
	ErrPlayback    = &Error{Kind: KindPlayback}
	ErrStreamEnded = &Error{Kind: KindStreamEnded}
	ErrRecording   = &Error{Kind: KindRecording}
)

// ErrReleased is returned by commands issued to a released session.
var ErrReleased = errors.New("session released")

var (
	errNotInitialized = errors.New("engine not initialized")
	errNilSurface     = errors.New("no surface given")
	errNoSurface      = errors.New("no surface attached")
	errBlankURL       = errors.New("URL cannot be empty")
	errNotPlaying     = errors.New("stream not playing")
	errPlaybackFault  = errors.New("playback error occurred")
	errStreamEnded    = errors.New("stream ended")
)

func newError(kind ErrorKind, op errmsg.Op, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
