//go:build linux

package mpris

import (
	"strings"
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/streamview/internal/playback"
)

type fakePlayer struct {
	snap   playback.Snapshot
	calls  []string
	opened string
}

func (f *fakePlayer) Resume() error { f.calls = append(f.calls, "Resume"); return nil }

func (f *fakePlayer) Stop() error { f.calls = append(f.calls, "Stop"); return nil }

func (f *fakePlayer) Open(url string) error {
	f.calls = append(f.calls, "Open")
	f.opened = url
	return nil
}

func (f *fakePlayer) Snapshot() playback.Snapshot { return f.snap }

func TestPlayerAdapter_PlayPause(t *testing.T) {
	tests := []struct {
		name string
		snap playback.Snapshot
		want string
	}{
		{"stops when playing", playback.Snapshot{State: playback.StatePlaying}, "Stop"},
		{"stops when pending", playback.Snapshot{State: playback.StateStopped, Pending: true}, "Stop"},
		{"resumes when stopped", playback.Snapshot{State: playback.StateStopped}, "Resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlayer{snap: tt.snap}
			p := &playerAdapter{player: fp}

			if err := p.PlayPause(); err != nil {
				t.Fatalf("PlayPause() error = %v", err)
			}
			if len(fp.calls) != 1 || fp.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", fp.calls, tt.want)
			}
		})
	}
}

func TestPlayerAdapter_PauseStops(t *testing.T) {
	fp := &fakePlayer{snap: playback.Snapshot{State: playback.StatePlaying}}
	p := &playerAdapter{player: fp}

	_ = p.Pause()
	_ = p.Play()
	_ = p.Stop()

	if got := strings.Join(fp.calls, ","); got != "Stop,Resume,Stop" {
		t.Errorf("calls = %s", got)
	}
}

func TestPlayerAdapter_OpenUri(t *testing.T) {
	fp := &fakePlayer{}
	p := &playerAdapter{player: fp}

	if err := p.OpenUri("rtsp://cam/other"); err != nil {
		t.Fatalf("OpenUri() error = %v", err)
	}
	if fp.opened != "rtsp://cam/other" {
		t.Errorf("opened = %q", fp.opened)
	}

	if err := p.OpenUri("file:///tmp/a.mp4"); err == nil {
		t.Error("OpenUri() should reject file URIs")
	}
}

func TestPlayerAdapter_PlaybackStatus(t *testing.T) {
	fp := &fakePlayer{snap: playback.Snapshot{State: playback.StatePlaying}}
	p := &playerAdapter{player: fp}

	if st, _ := p.PlaybackStatus(); st != types.PlaybackStatusPlaying {
		t.Errorf("PlaybackStatus() = %v, want Playing", st)
	}

	fp.snap.State = playback.StateStopped
	if st, _ := p.PlaybackStatus(); st != types.PlaybackStatusStopped {
		t.Errorf("PlaybackStatus() = %v, want Stopped", st)
	}
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	fp := &fakePlayer{}
	p := &playerAdapter{player: fp}

	meta, err := p.Metadata()
	if err != nil || meta.Title != "" {
		t.Errorf("Metadata() without stream = %+v, %v", meta, err)
	}

	fp.snap.URL = "rtsp://cam.local/stream"
	meta, _ = p.Metadata()
	if meta.Title != "rtsp://cam.local/stream" {
		t.Errorf("Title = %q", meta.Title)
	}
	if len(meta.Artist) != 1 || meta.Artist[0] != "cam.local" {
		t.Errorf("Artist = %v", meta.Artist)
	}
	if !strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Stream/") {
		t.Errorf("TrackId = %q", meta.TrackId)
	}
}

func TestFormatTrackID_Stable(t *testing.T) {
	a := formatTrackID("rtsp://cam/stream")
	b := formatTrackID("rtsp://cam/stream")
	c := formatTrackID("rtsp://cam/other")

	if a != b {
		t.Error("same URL should give same track id")
	}
	if a == c {
		t.Error("different URLs should give different track ids")
	}
}
