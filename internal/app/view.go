// internal/app/view.go
package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/streamview/internal/ui/headerbar"
	"github.com/llehouerou/streamview/internal/ui/render"
	"github.com/llehouerou/streamview/internal/ui/statusbar"
	"github.com/llehouerou/streamview/internal/ui/styles"
)

const labelWidth = 11

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	compact := m.lifecycle.Compact()
	header := headerbar.Render(headerbar.Indicators{
		Focused:   m.Focused,
		Compact:   compact,
		Recording: m.snap.Recording,
	}, m.Width)
	bar := statusbar.Render(m.statusState(), m.Width)

	// Compact presentation keeps only the header and status line.
	if compact {
		return header + "\n" + bar
	}

	help := styles.T().S().Subtle.Render(
		render.TruncateEllipsis(helpText(AvailableKeys(m.caps)), m.Width),
	)
	bodyHeight := max(m.Height-headerbar.Height-statusbar.Height-1, 3)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderBody(bodyHeight), bar, help)
}

func (m Model) statusState() statusbar.State {
	s := statusbar.NewState(m.snap, m.now())
	s.Buffering = m.buffering
	s.Spinner = m.spinner.View()
	s.Focused = m.Focused
	return s
}

func (m Model) renderBody(height int) string {
	st := styles.T().S()
	innerWidth := max(m.Width-4, 0)
	valueWidth := max(innerWidth-labelWidth, 0)

	state := m.snap.State.String()
	if m.snap.Pending {
		state += " (connecting)"
	}
	output := "none"
	if m.snap.HasSurface && m.surface != nil {
		output = m.surface.VideoSink()
	}
	url := m.snap.URL
	if url == "" {
		url = m.lifecycle.URL()
	}
	rec := "off"
	if m.snap.Recording {
		rec = m.snap.RecordingPath
	}

	lines := []string{
		field("Stream", render.URL(orDash(url), valueWidth)),
		field("State", state),
		field("Output", output),
		field("Recording", render.TruncateEllipsis(rec, valueWidth)),
	}
	if r := m.lastRecording; r != nil {
		saved := filepath.Base(r.Path) + " · " + recordingInfo(*r).String() + " · " +
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now")
		lines = append(lines, field("Last saved", render.TruncateEllipsis(saved, valueWidth)))
	}
	if m.ErrorMsg != "" || m.StatusMsg != "" || m.stderrLine != "" {
		lines = append(lines, st.Muted.Render(render.Separator(innerWidth)))
	} else {
		lines = append(lines, "")
	}
	if m.ErrorMsg != "" {
		lines = append(lines, st.Error.Render(render.TruncateEllipsis(m.ErrorMsg, innerWidth)))
	} else if m.StatusMsg != "" {
		lines = append(lines, st.Success.Render(render.TruncateEllipsis(m.StatusMsg, innerWidth)))
	}
	if m.stderrLine != "" {
		lines = append(lines, st.Muted.Render(render.TruncateEllipsis("engine: "+m.stderrLine, innerWidth)))
	}
	if m.prompt.Active() {
		lines = append(lines, "", m.prompt.View())
	}

	return styles.PanelStyle(m.Focused).
		Padding(0, 1).
		Width(m.Width - 2).
		Height(max(height-2, 1)).
		Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return styles.T().S().Muted.Render(label+strings.Repeat(" ", max(labelWidth-len(label), 1))) + value
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
