// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamview/internal/ui/render"
	"github.com/llehouerou/streamview/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const title = "streamview"

// Indicators are the flags shown on the right of the header.
type Indicators struct {
	Focused   bool
	Compact   bool
	Recording bool
}

// Render returns the header bar string for the given width.
func Render(ind Indicators, width int) string {
	if width < 20 {
		return ""
	}

	st := styles.T().S()
	left := styles.Brand(title)

	var parts []string
	if ind.Recording {
		parts = append(parts, st.Recording.Render("REC"))
	}
	if ind.Compact {
		parts = append(parts, st.Warning.Render("compact"))
	}
	if ind.Focused {
		parts = append(parts, st.Muted.Render("focused"))
	} else {
		parts = append(parts, st.Subtle.Render("paused on blur"))
	}
	right := strings.Join(parts, st.Subtle.Render(" │ "))

	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		return left
	}
	return render.Row(left, right, width)
}
