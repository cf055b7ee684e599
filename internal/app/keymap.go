// internal/app/keymap.go
package app

import (
	"strings"

	"github.com/llehouerou/streamview/internal/platform"
)

// KeyBinding describes a single key binding for documentation.
type KeyBinding struct {
	Keys        []string
	Description string
	Compact     bool // only offered when the host supports compact mode
}

// KeyMap contains all key bindings for help generation.
var KeyMap = []KeyBinding{
	{Keys: []string{"space"}, Description: "Play/stop"},
	{Keys: []string{"s"}, Description: "Stop"},
	{Keys: []string{"r"}, Description: "Record"},
	{Keys: []string{"c"}, Description: "Compact", Compact: true},
	{Keys: []string{"o"}, Description: "Open URL"},
	{Keys: []string{"esc"}, Description: "Dismiss error"},
	{Keys: []string{"q", "ctrl+c"}, Description: "Quit"},
}

// AvailableKeys returns the bindings usable on a host.
func AvailableKeys(caps platform.Capabilities) []KeyBinding {
	var result []KeyBinding
	for _, kb := range KeyMap {
		if kb.Compact && !caps.CompactMode {
			continue
		}
		result = append(result, kb)
	}
	return result
}

// helpText renders bindings as "key desc · key desc".
func helpText(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, kb.Keys[0]+" "+strings.ToLower(kb.Description))
	}
	return strings.Join(parts, " · ")
}
