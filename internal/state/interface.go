// internal/state/interface.go
package state

import "time"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSession(state SessionState)
	GetSession() (*SessionState, error)
	RecordPlayed(url string, at time.Time) error
	RecentStreams(limit int) ([]RecentStream, error)
	AddRecording(r Recording) error
	ListRecordings(limit int) ([]Recording, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
