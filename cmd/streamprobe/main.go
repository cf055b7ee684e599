// Command streamprobe plays a stream headless for a while and reports what
// the session saw. With -record it also records and finalizes a clip.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/player/gstreamer"
	"github.com/llehouerou/streamview/internal/recording"
)

func main() {
	streamURL := flag.String("url", "", "Stream URL (required)")
	duration := flag.Duration("duration", 10*time.Second, "How long to play")
	record := flag.Bool("record", false, "Record once playback is confirmed")
	recordDir := flag.String("record-dir", recording.DefaultDir(), "Directory for recordings")
	sink := flag.String("sink", "fakesink", "GStreamer video sink")
	caching := flag.Duration("network-caching", player.DefaultNetworkCaching, "Source buffering")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *streamURL == "" {
		fmt.Fprintf(os.Stderr, "Error: -url flag is required\n\n")
		fmt.Fprintf(os.Stderr, "Usage example:\n")
		fmt.Fprintf(os.Stderr, "  streamprobe -url rtsp://192.168.1.100/stream -duration 30s -record\n\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	opts := player.DefaultOptions()
	opts.NetworkCaching = *caching

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *duration)
	defer cancelTimeout()

	p := probe{
		session: playback.New(gstreamer.New,
			playback.WithEngineOptions(opts),
			playback.WithRecordingPaths(recording.Namer{Dir: *recordDir, Prefix: recording.DefaultPrefix}.Next),
			playback.WithLogger(logger),
		),
		record: *record,
		log:    logger,
	}
	if err := p.run(ctx, *streamURL, player.SinkSurface(*sink)); err != nil {
		logger.Error("probe failed", "error", err)
		os.Exit(1)
	}
}

type probe struct {
	session *playback.Session
	record  bool
	log     *slog.Logger

	confirmedAt time.Time
	buffering   int
}

func (p *probe) run(ctx context.Context, url string, surf player.Surface) error {
	sub := p.session.Subscribe()
	started := time.Now()

	if err := p.session.Initialize(); err != nil {
		return err
	}
	if err := p.session.AttachSurface(surf); err != nil {
		_ = p.session.Release()
		return err
	}
	if err := p.session.Play(url); err != nil {
		_ = p.session.Release()
		return err
	}

	runErr := p.watch(ctx, sub, started)

	_ = p.session.Release()
	p.drainRecording(sub)

	if p.confirmedAt.IsZero() {
		if runErr == nil {
			runErr = errors.New("playback never confirmed")
		}
		return runErr
	}
	fmt.Printf("playing after %s, %d buffering updates\n",
		p.confirmedAt.Sub(started).Round(time.Millisecond), p.buffering)
	return runErr
}

func (p *probe) watch(ctx context.Context, sub *playback.Subscription, started time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case e := <-sub.StateChanged:
			p.log.Debug("state", "from", e.Previous, "to", e.Current)

		case e := <-sub.Playing:
			if p.confirmedAt.IsZero() {
				p.confirmedAt = time.Now()
				p.log.Info("playing", "url", player.RedactURL(e.URL), "after", p.confirmedAt.Sub(started))
			}
			if p.record {
				p.record = false
				if !p.session.StartRecording() {
					p.log.Warn("recording did not start")
				}
			}

		case e := <-sub.Buffering:
			p.buffering++
			p.log.Debug("buffering", "percent", e.Percent)

		case e := <-sub.Recording:
			p.report(e)

		case e := <-sub.Error:
			p.log.Warn("session error", "message", e.Message)
			if e.Err != nil && (e.Err.Kind == playback.KindPlayback || e.Err.Kind == playback.KindStreamEnded) {
				return e.Err
			}
		}
	}
}

// drainRecording handles the end-of-recording event produced by Release.
func (p *probe) drainRecording(sub *playback.Subscription) {
	for {
		select {
		case e := <-sub.Recording:
			p.report(e)
		default:
			return
		}
	}
}

func (p *probe) report(e playback.RecordingEvent) {
	if e.Active {
		p.log.Info("recording", "path", e.Path)
		return
	}
	info, err := recording.Finalize(e.Path, recording.Meta{
		URL:       e.URL,
		StartedAt: e.StartedAt,
		Duration:  e.Duration,
	})
	if err != nil && info.Size == 0 {
		p.log.Error("recording lost", "path", e.Path, "error", err)
		return
	}
	if err != nil {
		p.log.Warn("recording not tagged", "path", e.Path, "error", err)
	}
	fmt.Printf("recorded %s (%s)\n", info.Path, info)
}
