// Package notify provides desktop notifications via D-Bus.
package notify

import "path/filepath"

const appName = "streamview"

const (
	iconRecord = "media-record"
	iconError  = "dialog-error"

	defaultTimeout int32 = 5000
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// RecordingSaved describes a finished recording. summary is a short size
// and duration line.
func RecordingSaved(path, summary string) Notification {
	body := filepath.Base(path)
	if summary != "" {
		body += "\n" + summary
	}
	return Notification{
		Title:   "Recording saved",
		Body:    body,
		Icon:    iconRecord,
		Timeout: defaultTimeout,
		Urgency: UrgencyNormal,
	}
}

// StreamError reports a playback failure on url.
func StreamError(url, message string) Notification {
	return Notification{
		Title:   "Stream error",
		Body:    message + "\n" + url,
		Icon:    iconError,
		Timeout: defaultTimeout,
		Urgency: UrgencyCritical,
	}
}
