// Package stderr captures stderr output from C libraries (GStreamer, GLib
// and the plugins they load) that write directly to file descriptor 2,
// bypassing Go's os.Stderr. This prevents raw error messages from
// corrupting the TUI layout.
package stderr

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Messages receives stderr lines captured from C libraries.
// Callers should read from this channel to display errors in the UI.
var Messages = make(chan string, 100)

var (
	// "(streamview:12345): "
	glibPrefix = regexp.MustCompile(`^\([^()]*:\d+\):\s*`)
	// " **: 10:11:12.123: "
	glibStamp = regexp.MustCompile(`\s*\*\*:\s*(\d{2}:\d{2}:\d{2}\.\d+:\s*)?`)
)

// Clean turns a raw GLib/GStreamer stderr line into a short status line:
// colors and the process prefix are removed, e.g.
//
//	(streamview:4242): GStreamer-WARNING **: 10:11:12.123: no element "x"
//
// becomes "GStreamer-WARNING: no element "x"".
func Clean(line string) string {
	line = strings.TrimSpace(ansi.Strip(line))
	line = glibPrefix.ReplaceAllString(line, "")
	line = glibStamp.ReplaceAllString(line, ": ")
	return strings.TrimSpace(line)
}
