// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Engine operations
	OpEngineInit    Op = "initialize media engine"
	OpEngineRelease Op = "release media engine"
	OpSurfaceAttach Op = "attach video surface"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlayback      Op = "play stream"

	// Recording operations
	OpRecordingStart    Op = "start recording"
	OpRecordingStop     Op = "stop recording"
	OpRecordingFinalize Op = "finalize recording"

	// Presentation
	OpCompactMode Op = "switch to compact mode"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
