//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/streamview/internal/playback"
)

// Adapter exposes a stream player over MPRIS on D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(p Player) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{player: p}),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return uriSchemes, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/mp2t", "application/vnd.apple.mpegurl"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. A live
// stream cannot pause, so Pause stops it.
type playerAdapter struct {
	player Player
}

func (p *playerAdapter) Next() error {
	return nil // Single stream
}

func (p *playerAdapter) Previous() error {
	return nil // Single stream
}

func (p *playerAdapter) Pause() error {
	return p.player.Stop()
}

func (p *playerAdapter) PlayPause() error {
	if active(p.player.Snapshot()) {
		return p.player.Stop()
	}
	return p.player.Resume()
}

func (p *playerAdapter) Stop() error {
	return p.player.Stop()
}

func (p *playerAdapter) Play() error {
	return p.player.Resume()
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Live streams cannot seek
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Live streams cannot seek
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(uri string) error {
	if !supportedURI(uri) {
		return fmt.Errorf("unsupported uri scheme: %s", uri)
	}
	return p.player.Open(uri)
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.player.Snapshot()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.player.Snapshot()
	if snap.URL == "" {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.URL)),
		Title:   title(snap),
		Artist:  []string{source(snap.URL)},
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap := p.player.Snapshot()
	return snap.HasSurface && snap.State != playback.StateReleased, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return active(p.player.Snapshot()), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Stream/%x", h.Sum64())
}

func playbackStatus(snap playback.Snapshot) types.PlaybackStatus {
	if active(snap) {
		return types.PlaybackStatusPlaying
	}
	return types.PlaybackStatusStopped
}
