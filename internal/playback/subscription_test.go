package playback

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Previous: StateSurfaceAttached, Current: StatePlaying})
		sub.sendPlaying(PlayingEvent{URL: "rtsp://cam/a"})
		sub.sendError(ErrorEvent{Message: "stream ended"})
		sub.sendBuffering(42)
		sub.sendRecording(RecordingEvent{Active: true, Path: "/videos/a.mp4"})

		e := <-sub.StateChanged
		if e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}

		p := <-sub.Playing
		if p.URL != "rtsp://cam/a" {
			t.Errorf("Playing.URL = %q, want rtsp://cam/a", p.URL)
		}

		er := <-sub.Error
		if er.Message != "stream ended" {
			t.Errorf("Error.Message = %q, want stream ended", er.Message)
		}

		b := <-sub.Buffering
		if b.Percent != 42 {
			t.Errorf("Buffering.Percent = %v, want 42", b.Percent)
		}

		r := <-sub.Recording
		if !r.Active || r.Path != "/videos/a.mp4" {
			t.Errorf("Recording = %+v, want active /videos/a.mp4", r)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_Close_KeepsBufferedEvents(t *testing.T) {
	sub := newSubscription()
	sub.sendPlaying(PlayingEvent{URL: "rtsp://cam/a"})
	sub.close()

	select {
	case p := <-sub.Playing:
		if p.URL != "rtsp://cam/a" {
			t.Errorf("Playing.URL = %q, want rtsp://cam/a", p.URL)
		}
	default:
		t.Fatal("buffered event lost on close")
	}
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	// Fill buffer
	for range eventBufferSize + 5 {
		sub.sendState(StateChange{})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}

func TestRecordingDuration(t *testing.T) {
	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	if got := recordingDuration(start, start.Add(90*time.Second)); got != 90*time.Second {
		t.Errorf("recordingDuration() = %v, want 1m30s", got)
	}
	if got := recordingDuration(time.Time{}, start); got != 0 {
		t.Errorf("recordingDuration(zero) = %v, want 0", got)
	}
	if got := recordingDuration(start, start.Add(-time.Second)); got != 0 {
		t.Errorf("recordingDuration(backwards) = %v, want 0", got)
	}
}
