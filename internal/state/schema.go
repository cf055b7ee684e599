package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_url TEXT NOT NULL,
			compact INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS recent_streams (
			url TEXT PRIMARY KEY,
			last_played_at INTEGER NOT NULL,
			play_count INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_recent_streams_played ON recent_streams(last_played_at DESC);

		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			url TEXT,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			size INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
