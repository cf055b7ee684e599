package player

// EventType identifies an engine event.
type EventType int

const (
	EventPlaying EventType = iota
	EventEncounteredError
	EventEndReached
	EventBuffering
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventPlaying:
		return "Playing"
	case EventEncounteredError:
		return "EncounteredError"
	case EventEndReached:
		return "EndReached"
	case EventBuffering:
		return "Buffering"
	default:
		return "Unknown"
	}
}

// EventBufferSize is the capacity engines should give their event channel.
const EventBufferSize = 32

// Event is emitted by an engine from its own goroutine.
type Event struct {
	Type      EventType
	MediaID   string  // ID of the media binding the event belongs to
	Buffering float64 // percent, for EventBuffering
	Err       error   // for EventEncounteredError
}
