// Package recording names, prepares and finalizes stream recordings.
package recording

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	appName = "streamview"

	// DefaultPrefix is the file name prefix of recordings.
	DefaultPrefix = "stream_recording"

	// Extension is the container extension of recordings.
	Extension = ".mp4"
)

// DefaultDir returns the videos directory of the user, namespaced by app.
func DefaultDir() string {
	return filepath.Join(xdg.UserDirs.Videos, appName)
}

// NewPath returns <dir>/<prefix>_<unix millis>.mp4 for now.
func NewPath(dir, prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", prefix, now.UnixMilli(), Extension))
}

// EnsureDir creates dir if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create recordings dir: %w", err)
	}
	return nil
}

// Namer hands out recording paths in one directory.
type Namer struct {
	Dir    string
	Prefix string
}

// Next creates the directory if needed and returns the path for a
// recording started at now.
func (n Namer) Next(now time.Time) (string, error) {
	if err := EnsureDir(n.Dir); err != nil {
		return "", err
	}
	return NewPath(n.Dir, n.Prefix, now), nil
}
