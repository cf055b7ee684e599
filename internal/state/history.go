package state

import (
	"database/sql"
	"time"
)

// RecentStream is a stream that reached playback.
type RecentStream struct {
	URL          string
	LastPlayedAt time.Time
	PlayCount    int
}

// Recording is an entry of the recordings log.
type Recording struct {
	Path      string
	URL       string
	StartedAt time.Time
	Duration  time.Duration
	Size      int64
	CreatedAt time.Time
}

// recordPlayed bumps url to the top and trims the table to MaxRecentStreams.
func recordPlayed(sqlDB *sql.DB, url string, at time.Time) error {
	return withTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recent_streams (url, last_played_at, play_count)
			VALUES (?, ?, 1)
			ON CONFLICT(url) DO UPDATE SET
				last_played_at = excluded.last_played_at,
				play_count = play_count + 1
		`, url, at.UnixMilli())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM recent_streams WHERE url NOT IN (
				SELECT url FROM recent_streams ORDER BY last_played_at DESC LIMIT ?
			)
		`, MaxRecentStreams)
		return err
	})
}

func recentStreams(db *sql.DB, limit int) ([]RecentStream, error) {
	rows, err := db.Query(`
		SELECT url, last_played_at, play_count
		FROM recent_streams
		ORDER BY last_played_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streams []RecentStream
	for rows.Next() {
		var s RecentStream
		var playedAt int64
		if err := rows.Scan(&s.URL, &playedAt, &s.PlayCount); err != nil {
			return nil, err
		}
		s.LastPlayedAt = time.UnixMilli(playedAt)
		streams = append(streams, s)
	}
	return streams, rows.Err()
}

func addRecording(db *sql.DB, r Recording) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	var url any
	if r.URL != "" {
		url = r.URL
	}
	_, err := db.Exec(`
		INSERT INTO recordings (path, url, started_at, duration_ms, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			duration_ms = excluded.duration_ms,
			size = excluded.size
	`, r.Path, url, r.StartedAt.UnixMilli(), r.Duration.Milliseconds(), r.Size, r.CreatedAt.UnixMilli())
	return err
}

func listRecordings(db *sql.DB, limit int) ([]Recording, error) {
	rows, err := db.Query(`
		SELECT path, url, started_at, duration_ms, size, created_at
		FROM recordings
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var r Recording
		var url sql.NullString
		var startedAt, durationMs, createdAt int64
		if err := rows.Scan(&r.Path, &url, &startedAt, &durationMs, &r.Size, &createdAt); err != nil {
			return nil, err
		}
		r.URL = nullStringValue(url)
		r.StartedAt = time.UnixMilli(startedAt)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdAt)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
