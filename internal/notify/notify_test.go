package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNotificationZeroValue(t *testing.T) {
	var n Notification
	if n.Urgency != UrgencyLow {
		t.Errorf("zero value Urgency = %d, want UrgencyLow (0)", n.Urgency)
	}
	if n.Timeout != 0 {
		t.Error("zero value Timeout should be 0 (never expire)")
	}
	if n.ReplacesID != 0 {
		t.Error("zero value ReplacesID should be 0 (new notification)")
	}
}

func TestRecordingSaved(t *testing.T) {
	n := RecordingSaved("/home/u/Videos/streamview/stream_recording_1.mp4", "12 MiB, 1m30s")

	if n.Title != "Recording saved" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "stream_recording_1.mp4\n12 MiB, 1m30s" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.Urgency != UrgencyNormal {
		t.Errorf("Urgency = %d, want UrgencyNormal", n.Urgency)
	}

	if n := RecordingSaved("/tmp/a.mp4", ""); n.Body != "a.mp4" {
		t.Errorf("Body without summary = %q", n.Body)
	}
}

func TestStreamError(t *testing.T) {
	n := StreamError("rtsp://cam/stream", "stream ended")

	if n.Body != "stream ended\nrtsp://cam/stream" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.Urgency != UrgencyCritical {
		t.Errorf("Urgency = %d, want UrgencyCritical", n.Urgency)
	}
	if n.Timeout <= 0 {
		t.Error("error notifications should expire")
	}
}
