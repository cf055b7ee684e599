// internal/player/mock.go
package player

import (
	"errors"
	"sync"
)

// Mock is a test double for a media engine.
type Mock struct {
	mu       sync.Mutex
	opts     Options
	surface  Surface
	media    *Media
	playing  bool
	released bool
	events   chan Event
	calls    []string

	attachErr error
	playErr   error
	stopErr   error
	optionErr error
	panicOn   string
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, EventBufferSize),
	}
}

// fault panics when the mock was told to panic on method.
func (m *Mock) fault(method string) {
	m.calls = append(m.calls, method)
	if m.panicOn == method {
		panic("mock: native fault in " + method)
	}
}

func (m *Mock) AttachOutput(s Surface) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("AttachOutput")
	if m.released {
		return ErrReleased
	}
	if m.attachErr != nil {
		return m.attachErr
	}
	m.surface = s
	return nil
}

func (m *Mock) DetachOutput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("DetachOutput")
	m.surface = nil
	return nil
}

func (m *Mock) SetMedia(media *Media) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("SetMedia")
	if m.released {
		return ErrReleased
	}
	m.media = media
	return nil
}

func (m *Mock) Media() *Media {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.media
}

func (m *Mock) AddMediaOption(opt MediaOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("AddMediaOption")
	if m.optionErr != nil {
		return m.optionErr
	}
	if m.media == nil {
		return errors.New("no media")
	}
	m.media.AddOption(opt)
	return nil
}

func (m *Mock) RemoveMediaOption(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("RemoveMediaOption")
	if m.media != nil {
		m.media.RemoveOption(name)
	}
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("Play")
	if m.released {
		return ErrReleased
	}
	if m.playErr != nil {
		return m.playErr
	}
	if m.media == nil {
		return errors.New("no media")
	}
	m.playing = true
	return nil
}

func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("Stop")
	if m.stopErr != nil {
		return m.stopErr
	}
	m.playing = false
	return nil
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault("Release")
	if m.released {
		return nil
	}
	m.released = true
	m.playing = false
	close(m.events)
	return nil
}

// Test helpers

func (m *Mock) Options() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts
}

func (m *Mock) Surface() Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surface
}

func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) SetAttachError(err error) { m.mu.Lock(); m.attachErr = err; m.mu.Unlock() }

func (m *Mock) SetPlayError(err error) { m.mu.Lock(); m.playErr = err; m.mu.Unlock() }

func (m *Mock) SetStopError(err error) { m.mu.Lock(); m.stopErr = err; m.mu.Unlock() }

func (m *Mock) SetOptionError(err error) { m.mu.Lock(); m.optionErr = err; m.mu.Unlock() }

// PanicOn makes the named method panic, simulating a native library fault.
func (m *Mock) PanicOn(method string) { m.mu.Lock(); m.panicOn = method; m.mu.Unlock() }

// Emit delivers an event as the engine thread would. Events without a
// MediaID are stamped with the current media binding. Emitting after
// Release is a no-op.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	if e.MediaID == "" && m.media != nil {
		e.MediaID = m.media.ID
	}
	select {
	case m.events <- e:
	default:
	}
}

// EmitPlaying simulates the engine confirming playback.
func (m *Mock) EmitPlaying() { m.Emit(Event{Type: EventPlaying}) }

// EmitError simulates an engine-reported playback fault.
func (m *Mock) EmitError(err error) { m.Emit(Event{Type: EventEncounteredError, Err: err}) }

// EmitEndReached simulates the stream ending.
func (m *Mock) EmitEndReached() { m.Emit(Event{Type: EventEndReached}) }

// EmitBuffering simulates buffering progress.
func (m *Mock) EmitBuffering(percent float64) {
	m.Emit(Event{Type: EventBuffering, Buffering: percent})
}

// MockFactory hands out Mock engines and remembers them.
type MockFactory struct {
	mu      sync.Mutex
	engines []*Mock
	err     error
	panics  bool
}

// NewMockFactory creates a factory for mock engines.
func NewMockFactory() *MockFactory {
	return &MockFactory{}
}

// New allocates a mock engine. It matches the Factory signature.
func (f *MockFactory) New(opts Options) (Interface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panics {
		panic("mock: engine construction fault")
	}
	if f.err != nil {
		return nil, f.err
	}
	m := NewMock()
	m.opts = opts
	f.engines = append(f.engines, m)
	return m, nil
}

// SetError makes subsequent allocations fail with err.
func (f *MockFactory) SetError(err error) { f.mu.Lock(); f.err = err; f.mu.Unlock() }

// SetPanic makes subsequent allocations panic.
func (f *MockFactory) SetPanic(p bool) { f.mu.Lock(); f.panics = p; f.mu.Unlock() }

// Count returns the number of engines allocated so far.
func (f *MockFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.engines)
}

// Last returns the most recently allocated engine, or nil.
func (f *MockFactory) Last() *Mock {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.engines) == 0 {
		return nil
	}
	return f.engines[len(f.engines)-1]
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Verify MockFactory.New matches Factory at compile time.
var _ Factory = (*MockFactory)(nil).New
