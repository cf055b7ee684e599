// Package statusbar renders the one-line stream status shown in both full
// and compact presentation.
package statusbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/ui/render"
	"github.com/llehouerou/streamview/internal/ui/styles"
)

// Height is the total height of the bar: top border + content + bottom border.
const Height = 3

const (
	playingSymbol = "▶"
	stoppedSymbol = "■"
	idleSymbol    = "○"
	recSymbol     = "●"

	filledBlock = "▓"
	emptyBlock  = "░"

	bufferBarWidth = 10
)

// State holds everything needed to render the status bar.
type State struct {
	Stream       playback.State
	URL          string
	Pending      bool
	Spinner      string  // current spinner frame, shown while pending
	Buffering    float64 // percent; the bar is hidden at 0 and 100
	Recording    bool
	RecordingFor time.Duration
	Focused      bool
}

// NewState builds a State from a session snapshot.
func NewState(snap playback.Snapshot, now time.Time) State {
	s := State{
		Stream:    snap.State,
		URL:       snap.URL,
		Pending:   snap.Pending,
		Recording: snap.Recording,
	}
	if snap.Recording && !snap.RecordingSince.IsZero() {
		s.RecordingFor = max(now.Sub(snap.RecordingSince), 0)
	}
	return s
}

// Render returns the bordered status bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border + padding

	right := renderRight(s)
	glyph := statusGlyph(s)
	urlWidth := max(innerWidth-lipgloss.Width(glyph)-1-lipgloss.Width(right)-3, 0)

	url := s.URL
	if url == "" {
		url = "no stream"
	}
	left := glyph + " " + styles.T().S().Base.Render(render.URL(url, urlWidth))

	content := render.Row(left, right, innerWidth)
	return styles.PanelStyle(s.Focused).Padding(0, 2).Width(width - 2).Render(content)
}

func statusGlyph(s State) string {
	st := styles.T().S()
	switch {
	case s.Pending && s.Spinner != "":
		return st.Warning.Render(s.Spinner)
	case s.Stream == playback.StatePlaying:
		return st.Live.Render(playingSymbol)
	case s.Stream == playback.StateStopped:
		return st.Muted.Render(stoppedSymbol)
	default:
		return st.Subtle.Render(idleSymbol)
	}
}

func renderRight(s State) string {
	st := styles.T().S()
	var parts []string

	if s.Buffering > 0 && s.Buffering < 100 {
		parts = append(parts, BufferBar(s.Buffering, bufferBarWidth))
	}
	if s.Recording {
		parts = append(parts, st.Recording.Render(recSymbol+" REC "+FormatElapsed(s.RecordingFor)))
	}
	if len(parts) == 0 {
		parts = append(parts, st.Muted.Render(stateLabel(s)))
	}
	return strings.Join(parts, "   ")
}

func stateLabel(s State) string {
	if s.Pending {
		return "connecting"
	}
	switch s.Stream {
	case playback.StatePlaying:
		return "live"
	case playback.StateStopped:
		return "stopped"
	case playback.StateReleased:
		return "released"
	default:
		return "idle"
	}
}

// BufferBar renders a block-style buffering gauge, the filled part in the
// theme gradient.
// Format: ▓▓▓▓░░░░░░ 42%
func BufferBar(percent float64, width int) string {
	t := styles.T()
	st := t.S()
	percent = min(max(percent, 0), 100)
	filled := min(int(float64(width)*percent/100), width)
	return styles.ApplyGradient(strings.Repeat(filledBlock, filled), t.Primary, t.Warning) +
		st.Muted.Render(strings.Repeat(emptyBlock, width-filled)) +
		st.Warning.Render(fmt.Sprintf(" %d%%", int(percent)))
}

// FormatElapsed formats a recording duration as m:ss, or h:mm:ss past an hour.
func FormatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
