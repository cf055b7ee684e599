// internal/player/interface.go
package player

import "errors"

// ErrReleased is returned by engine calls made after Release.
var ErrReleased = errors.New("engine released")

// Interface defines the media engine contract a playback session drives.
//
// Implementations deliver events from their own goroutines on the channel
// returned by Events. The channel is closed by Release.
type Interface interface {
	AttachOutput(s Surface) error
	DetachOutput() error
	SetMedia(m *Media) error
	Media() *Media
	// AddMediaOption adds an option to the current media binding in place.
	AddMediaOption(opt MediaOption) error
	RemoveMediaOption(name string) error
	Play() error
	Stop() error
	IsPlaying() bool
	Events() <-chan Event
	Release() error
}

// Factory allocates a new engine handle configured with opts.
type Factory func(opts Options) (Interface, error)

// Surface is a display target owned by the host UI. The engine only binds
// its video output to it and never destroys it.
type Surface interface {
	// VideoSink names the sink element that renders into this surface.
	VideoSink() string
}

// SinkSurface is a Surface identified by a sink element name,
// e.g. "autovideosink" or "fakesink".
type SinkSurface string

// VideoSink returns the sink element name.
func (s SinkSurface) VideoSink() string { return string(s) }
