package app

import (
	"github.com/llehouerou/streamview/internal/notify"
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/recording"
)

func (m *Model) sendNotification(n notify.Notification) uint32 {
	if m.notifier == nil {
		return 0
	}
	id, err := m.notifier.Notify(n)
	if err != nil {
		m.log.Warn("notification failed", "title", n.Title, "error", err)
		return 0
	}
	return id
}

// sendStreamErrorNotification replaces the previous stream error
// notification so a flapping camera does not pile them up.
func (m *Model) sendStreamErrorNotification(message string) {
	n := notify.StreamError(player.RedactURL(m.lifecycle.URL()), message)
	n.ReplacesID = m.errorNotifyID
	if id := m.sendNotification(n); id != 0 {
		m.errorNotifyID = id
	}
}

func (m *Model) sendRecordingSavedNotification(info recording.Info) {
	m.sendNotification(notify.RecordingSaved(info.Path, info.String()))
}
