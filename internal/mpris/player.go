// Package mpris exposes the stream player to desktop media keys and
// controllers over the MPRIS D-Bus interface.
package mpris

import (
	"net/url"
	"strings"

	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/player"
)

const (
	busName  = "streamview"
	identity = "streamview"
)

var uriSchemes = []string{"rtsp", "rtsps", "rtspt", "http", "https"}

// Player is the part of the host lifecycle the adapter drives.
type Player interface {
	Resume() error
	Stop() error
	Open(url string) error
	Snapshot() playback.Snapshot
}

// Verify playback.Lifecycle implements Player at compile time.
var _ Player = (*playback.Lifecycle)(nil)

func active(snap playback.Snapshot) bool {
	return snap.State == playback.StatePlaying || snap.Pending
}

func supportedURI(uri string) bool {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return false
	}
	scheme = strings.ToLower(scheme)
	for _, s := range uriSchemes {
		if s == scheme {
			return true
		}
	}
	return false
}

func title(snap playback.Snapshot) string {
	if snap.Recording {
		return "● " + player.RedactURL(snap.URL)
	}
	return player.RedactURL(snap.URL)
}

// source returns the host of a stream URL, shown where players expect an
// artist.
func source(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}
