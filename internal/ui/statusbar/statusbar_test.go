package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/streamview/internal/playback"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5*time.Second + 900*time.Millisecond, "0:05"},
		{83 * time.Second, "1:23"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBufferBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "░░░░░░░░░░ 0%"},
		{42, "▓▓▓▓░░░░░░ 42%"},
		{100, "▓▓▓▓▓▓▓▓▓▓ 100%"},
		{150, "▓▓▓▓▓▓▓▓▓▓ 100%"},
		{-3, "░░░░░░░░░░ 0%"},
	}

	for _, tt := range tests {
		if got := ansi.Strip(BufferBar(tt.percent, 10)); got != tt.want {
			t.Errorf("BufferBar(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestNewState(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := playback.Snapshot{
		State:          playback.StatePlaying,
		URL:            "rtsp://cam/stream",
		Recording:      true,
		RecordingSince: now.Add(-90 * time.Second),
	}

	s := NewState(snap, now)

	if s.Stream != playback.StatePlaying || s.URL != "rtsp://cam/stream" {
		t.Errorf("NewState() = %+v", s)
	}
	if s.RecordingFor != 90*time.Second {
		t.Errorf("RecordingFor = %v, want 90s", s.RecordingFor)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		contains []string
		excludes []string
	}{
		{
			name:     "no stream",
			state:    State{},
			contains: []string{"no stream", "idle"},
		},
		{
			name:     "playing",
			state:    State{Stream: playback.StatePlaying, URL: "rtsp://admin:pw@cam/stream"},
			contains: []string{playingSymbol, "rtsp://cam/stream", "live"},
			excludes: []string{"admin", "pw"},
		},
		{
			name:     "connecting",
			state:    State{Stream: playback.StateSurfaceAttached, Pending: true, Spinner: "⣾", URL: "rtsp://cam"},
			contains: []string{"⣾", "connecting"},
		},
		{
			name: "recording and buffering",
			state: State{
				Stream: playback.StatePlaying, URL: "rtsp://cam",
				Buffering: 30, Recording: true, RecordingFor: 65 * time.Second,
			},
			contains: []string{"REC 1:05", "30%"},
			excludes: []string{"live"},
		},
		{
			name:     "stopped",
			state:    State{Stream: playback.StateStopped, URL: "rtsp://cam"},
			contains: []string{stoppedSymbol, "stopped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(Render(tt.state, 80))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q in:\n%s", want, out)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(out, not) {
					t.Errorf("Render() should not contain %q in:\n%s", not, out)
				}
			}
		})
	}
}

func TestRender_Height(t *testing.T) {
	out := Render(State{URL: "rtsp://cam"}, 60)
	if h := lipgloss.Height(out); h != Height {
		t.Errorf("height = %d, want %d", h, Height)
	}
}

func TestRender_LongURLFits(t *testing.T) {
	s := State{Stream: playback.StatePlaying, URL: "rtsp://cam/" + strings.Repeat("x", 200)}

	out := Render(s, 50)

	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 50 {
			t.Errorf("line width = %d, want <= 50", w)
		}
	}
}
