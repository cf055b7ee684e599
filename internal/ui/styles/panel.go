package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered frame style. The border follows terminal
// focus, which is also what pauses and resumes the stream.
func PanelStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
