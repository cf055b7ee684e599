// Package state persists what should survive a restart: the last session,
// recently played streams and the recordings log. Stored in SQLite under the
// XDG data directory.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "streamview"
	dbFileName   = "streamview.db"
	saveDebounce = 500 * time.Millisecond

	// MaxRecentStreams bounds the recent streams table.
	MaxRecentStreams = 20
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *SessionState
}

// Open opens (creating if needed) the state database.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the state database at path.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close flushes a pending session save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveSession(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) GetSession() (*SessionState, error) {
	return getSession(m.db)
}

// SaveSession stores the session state after a short debounce, so rapid
// toggles write once.
func (m *Manager) SaveSession(state SessionState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSession(m.db, *pending)
		}
	})
}

func (m *Manager) RecordPlayed(url string, at time.Time) error {
	return recordPlayed(m.db, url, at)
}

func (m *Manager) RecentStreams(limit int) ([]RecentStream, error) {
	return recentStreams(m.db, limit)
}

func (m *Manager) AddRecording(r Recording) error {
	return addRecording(m.db, r)
}

func (m *Manager) ListRecordings(limit int) ([]Recording, error) {
	return listRecordings(m.db, limit)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// withTx executes fn within a transaction, rolling back when fn fails.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func nullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}
