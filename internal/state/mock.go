// internal/state/mock.go
package state

import (
	"slices"
	"time"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	Session    *SessionState
	Streams    []RecentStream
	Recordings []Recording
	Closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveSession(state SessionState) { m.Session = &state }

func (m *Mock) GetSession() (*SessionState, error) { return m.Session, nil }

func (m *Mock) RecordPlayed(url string, at time.Time) error {
	count := 1
	m.Streams = slices.DeleteFunc(m.Streams, func(s RecentStream) bool {
		if s.URL == url {
			count = s.PlayCount + 1
			return true
		}
		return false
	})
	m.Streams = slices.Insert(m.Streams, 0, RecentStream{URL: url, LastPlayedAt: at, PlayCount: count})
	return nil
}

func (m *Mock) RecentStreams(limit int) ([]RecentStream, error) {
	return m.Streams[:min(limit, len(m.Streams))], nil
}

func (m *Mock) AddRecording(r Recording) error {
	m.Recordings = slices.Insert(m.Recordings, 0, r)
	return nil
}

func (m *Mock) ListRecordings(limit int) ([]Recording, error) {
	return m.Recordings[:min(limit, len(m.Recordings))], nil
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
