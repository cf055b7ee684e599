package recording

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Sorrow446/go-mp4tag"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/streamview/internal/player"
)

// writeTagsFn is replaced in tests.
var writeTagsFn = writeTags

// ErrEmpty is returned by Finalize when the engine wrote no media data.
var ErrEmpty = errors.New("recording is empty")

// Meta describes a finished recording.
type Meta struct {
	URL       string
	StartedAt time.Time
	Duration  time.Duration
}

// Info is the result of finalizing a recording.
type Info struct {
	Path     string
	Size     int64
	Duration time.Duration
}

// String returns a short summary, e.g. "12 MiB, 1m30s".
func (i Info) String() string {
	if i.Size < 0 {
		return i.Duration.Round(time.Second).String()
	}
	return fmt.Sprintf("%s, %s", humanize.IBytes(uint64(i.Size)), i.Duration.Round(time.Second))
}

// Finalize tags the closed recording at path with its source and start time.
// Credentials in the source URL are not written. A tagging failure still
// returns the Info of the file on disk.
func Finalize(path string, meta Meta) (Info, error) {
	meta.URL = player.RedactURL(meta.URL)
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat recording: %w", err)
	}
	info := Info{Path: path, Size: st.Size(), Duration: meta.Duration}
	if info.Size == 0 {
		return info, ErrEmpty
	}

	if err := writeTagsFn(path, meta); err != nil {
		return info, err
	}

	// Tagging rewrites the moov atom.
	if st, err := os.Stat(path); err == nil {
		info.Size = st.Size()
	}
	return info, nil
}

func writeTags(path string, meta Meta) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(buildTags(meta), nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func buildTags(meta Meta) *mp4tag.MP4Tags {
	custom := make(map[string]string)
	if meta.URL != "" {
		custom["SOURCE"] = meta.URL
	}
	if meta.Duration > 0 {
		custom["DURATION"] = meta.Duration.Round(time.Millisecond).String()
	}

	tags := &mp4tag.MP4Tags{
		Title:  title(meta),
		Custom: custom,
	}
	if !meta.StartedAt.IsZero() {
		tags.Date = meta.StartedAt.UTC().Format(time.RFC3339)
	}
	return tags
}

func title(meta Meta) string {
	switch {
	case meta.URL != "" && !meta.StartedAt.IsZero():
		return fmt.Sprintf("%s (%s)", meta.URL, meta.StartedAt.Local().Format("2006-01-02 15:04:05"))
	case meta.URL != "":
		return meta.URL
	default:
		return "Stream recording"
	}
}
