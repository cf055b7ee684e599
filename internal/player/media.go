package player

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media option names understood by engines.
const (
	OptNetworkCaching = "network-caching"
	OptClockJitter    = "clock-jitter"
	OptClockSynchro   = "clock-synchro"
	OptRecordTo       = "record-to"
)

// MediaOption is a per-source directive attached to a media binding.
type MediaOption struct {
	Name  string
	Value string
}

// String formats the option as ":name=value".
func (o MediaOption) String() string {
	if o.Value == "" {
		return ":" + o.Name
	}
	return ":" + o.Name + "=" + o.Value
}

// NetworkCaching sets the per-source network buffer.
func NetworkCaching(d time.Duration) MediaOption {
	return MediaOption{Name: OptNetworkCaching, Value: strconv.FormatInt(d.Milliseconds(), 10)}
}

// NoClockSync disables clock jitter compensation and clock synchronisation,
// so frames are shown as soon as they are decoded.
func NoClockSync() []MediaOption {
	return []MediaOption{
		{Name: OptClockJitter, Value: "0"},
		{Name: OptClockSynchro, Value: "0"},
	}
}

// RecordTo is the sink option duplicating the stream into a file.
func RecordTo(path string) MediaOption {
	return MediaOption{Name: OptRecordTo, Value: path}
}

// Media is a media source URL plus its per-source options.
//
// Each Media gets a unique ID. Engines stamp their events with it so stale
// events from a replaced binding can be told apart. Media is not safe for
// concurrent mutation; the engine owning it serialises access.
type Media struct {
	ID      string
	URL     string
	options []MediaOption
}

// NewMedia creates a media binding for url.
func NewMedia(url string, opts ...MediaOption) *Media {
	m := &Media{
		ID:  uuid.NewString(),
		URL: url,
	}
	for _, o := range opts {
		m.AddOption(o)
	}
	return m
}

// Options returns a copy of the media options.
func (m *Media) Options() []MediaOption {
	return slices.Clone(m.options)
}

// Option returns the value of the named option.
func (m *Media) Option(name string) (string, bool) {
	for _, o := range m.options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// AddOption adds opt, replacing any option with the same name.
func (m *Media) AddOption(opt MediaOption) {
	for i, o := range m.options {
		if o.Name == opt.Name {
			m.options[i] = opt
			return
		}
	}
	m.options = append(m.options, opt)
}

// RemoveOption removes the named option and reports whether it was present.
func (m *Media) RemoveOption(name string) bool {
	before := len(m.options)
	m.options = slices.DeleteFunc(m.options, func(o MediaOption) bool {
		return o.Name == name
	})
	return len(m.options) != before
}

// RecordPath returns the recording destination, or "" if not recording.
func (m *Media) RecordPath() string {
	p, _ := m.Option(OptRecordTo)
	return p
}

// IsRTSP reports whether the source is an RTSP stream.
func (m *Media) IsRTSP() bool {
	u := strings.ToLower(m.URL)
	return strings.HasPrefix(u, "rtsp://") ||
		strings.HasPrefix(u, "rtsps://") ||
		strings.HasPrefix(u, "rtspt://")
}

// RedactURL drops the user info of a stream URL so camera credentials do
// not end up in logs, file tags or notifications.
func RedactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	authority, path, hasPath := strings.Cut(rest, "/")
	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return raw
	}
	out := scheme + "://" + authority[at+1:]
	if hasPath {
		out += "/" + path
	}
	return out
}

// Redacted returns the media URL without credentials.
func (m *Media) Redacted() string {
	return RedactURL(m.URL)
}
