package app

import (
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/recording"
	"github.com/llehouerou/streamview/internal/state"
)

const recentLimit = 10

func (m *Model) loadHistory() {
	if m.store == nil {
		return
	}
	if recent, err := m.store.RecentStreams(recentLimit); err == nil {
		m.recent = recent
	} else {
		m.log.Warn("load recent streams failed", "error", err)
	}
	if recs, err := m.store.ListRecordings(1); err == nil && len(recs) > 0 {
		m.lastRecording = &recs[0]
	}
}

func (m *Model) recordPlayed(url string) {
	if m.store == nil || url == "" {
		return
	}
	if err := m.store.RecordPlayed(url, m.now()); err != nil {
		m.log.Warn("record played stream failed", "url", player.RedactURL(url), "error", err)
	}
	m.saveSession()
	m.loadHistory()
}

func (m *Model) saveSession() {
	if m.store == nil {
		return
	}
	m.store.SaveSession(state.SessionState{
		LastURL: m.lifecycle.URL(),
		Compact: m.lifecycle.Compact() && !m.autoCompact,
	})
}

func (m *Model) logRecording(msg RecordingFinalizedMsg) {
	if m.store == nil {
		return
	}
	err := m.store.AddRecording(state.Recording{
		Path:      msg.Info.Path,
		URL:       msg.URL,
		StartedAt: msg.StartedAt,
		Duration:  msg.Info.Duration,
		Size:      msg.Info.Size,
		CreatedAt: m.now(),
	})
	if err != nil {
		m.log.Warn("log recording failed", "path", msg.Info.Path, "error", err)
		return
	}
	m.loadHistory()
}

// suggestions returns recent URLs for prompt completion.
func (m Model) suggestions() []string {
	urls := make([]string, 0, len(m.recent))
	for _, s := range m.recent {
		urls = append(urls, s.URL)
	}
	return urls
}

// recordingInfo rebuilds the summary of a logged recording.
func recordingInfo(r state.Recording) recording.Info {
	return recording.Info{Path: r.Path, Size: r.Size, Duration: r.Duration}
}
