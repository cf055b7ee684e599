// internal/playback/state.go
package playback

// State represents the playback session lifecycle.
//
//	┌───────────────┐ Initialize ┌─────────────┐ AttachSurface ┌─────────────────┐
//	│ Uninitialized │───────────▶│ Initialized │──────────────▶│ SurfaceAttached │
//	└───────────────┘            └─────────────┘               └─────────────────┘
//	        ▲                                                          │
//	        │                                          Play + engine   │
//	        │                                          playing event   ▼
//	        │                    ┌─────────────┐      Stop       ┌───────────┐
//	        │                    │   Stopped   │◀────────────────│  Playing  │
//	        │                    └─────────────┘────────────────▶└───────────┘
//	        │                                   Play + playing event
//	 Initialize (recreate)
//	        │
//	┌───────────────┐
//	│   Released    │◀── Release (from any state)
//	└───────────────┘
//
// Recording is a flag on Playing, not a state of its own.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateSurfaceAttached
	StatePlaying
	StateStopped
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitialized:
		return "Initialized"
	case StateSurfaceAttached:
		return "SurfaceAttached"
	case StatePlaying:
		return "Playing"
	case StateStopped:
		return "Stopped"
	case StateReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// HasEngine returns true if an engine handle exists in this state.
func (s State) HasEngine() bool {
	return s != StateUninitialized && s != StateReleased
}

// CanHaveSurface returns true if a surface may be bound in this state.
func (s State) CanHaveSurface() bool {
	return s == StateSurfaceAttached || s == StatePlaying || s == StateStopped
}

// CanPlay returns true if Play is accepted in this state.
func (s State) CanPlay() bool {
	return s.CanHaveSurface()
}
