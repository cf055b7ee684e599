// Package textinput provides the single-line prompt used to open another
// stream URL.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamview/internal/ui/styles"
)

// ResultMsg is sent when the prompt is confirmed or canceled.
type ResultMsg struct {
	Text     string
	Canceled bool // True if user pressed Escape
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Model is a text prompt wrapping a bubbles text input.
type Model struct {
	title  string
	input  textinput.Model
	active bool
}

// New creates a new, inactive prompt.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "rtsp://host/stream"
	ti.CharLimit = 2048
	ti.Width = 50
	ti.ShowSuggestions = true
	return Model{input: ti}
}

// Start activates the prompt with a title and initial text. Suggestions
// complete with Tab.
func (m *Model) Start(title, initialText string, width int, suggestions ...string) tea.Cmd {
	m.title = title
	m.active = true
	m.input.SetSuggestions(suggestions)
	m.input.SetValue(initialText)
	m.input.CursorEnd()
	m.input.Width = max(width-4, 10)
	m.input.Focus()
	return textinput.Blink
}

// Reset deactivates and clears the prompt.
func (m *Model) Reset() {
	m.title = ""
	m.active = false
	m.input.SetValue("")
	m.input.Blur()
}

// Active reports whether the prompt is shown.
func (m Model) Active() bool {
	return m.active
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Update handles keys while the prompt is active. Enter and Escape
// deactivate the prompt and emit a ResultMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Reset()
			return m, func() tea.Msg { return ResultMsg{Canceled: true} }
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.Reset()
			return m, func() tea.Msg { return ResultMsg{Text: text} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt, or nothing when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	title := titleStyle().Render(m.title)
	hint := hintStyle().Render("Enter: confirm, Tab: complete, Esc: cancel")
	return title + "\n" + m.input.View() + "\n" + hint
}
