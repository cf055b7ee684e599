package playback

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/streamview/internal/errmsg"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "formatted with operation",
			err:  newError(KindAttach, errmsg.OpSurfaceAttach, errNotInitialized),
			want: "Failed to attach video surface: engine not initialized",
		},
		{
			name: "invalid url",
			err:  newError(KindInvalidURL, errmsg.OpPlaybackStart, errBlankURL),
			want: "Failed to start playback: URL cannot be empty",
		},
		{
			name: "stream ended is not phrased as a failure",
			err:  newError(KindStreamEnded, errmsg.OpPlayback, errStreamEnded),
			want: "stream ended",
		},
		{
			name: "sentinel uses kind name",
			err:  ErrRecording,
			want: "RecordingError",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(KindPlayback, errmsg.OpPlayback, errPlaybackFault))

	assert.ErrorIs(t, err, ErrPlayback)
	assert.NotErrorIs(t, err, ErrInit)
	assert.ErrorIs(t, err, errPlaybackFault)

	var se *Error
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, KindPlayback, se.Kind)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "InitError", KindInit.String())
	assert.Equal(t, "StreamEndedError", KindStreamEnded.String())
	assert.Equal(t, "UnknownError", ErrorKind(0).String())
}
