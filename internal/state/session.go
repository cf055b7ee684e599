package state

import (
	"database/sql"
	"errors"
)

// SessionState is restored on the next start.
type SessionState struct {
	LastURL string
	Compact bool
}

func getSession(db *sql.DB) (*SessionState, error) {
	row := db.QueryRow(`SELECT last_url, compact FROM session_state WHERE id = 1`)

	var state SessionState
	err := row.Scan(&state.LastURL, &state.Compact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func saveSession(db *sql.DB, state SessionState) error {
	_, err := db.Exec(`
		INSERT INTO session_state (id, last_url, compact)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_url = excluded.last_url,
			compact = excluded.compact
	`, state.LastURL, state.Compact)

	return err
}
