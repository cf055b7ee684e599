// Package gstreamer implements the media engine on top of a GStreamer
// pipeline. The pipeline is rebuilt from the media binding on every Play.
package gstreamer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tinyzimmer/go-gst/gst"

	"github.com/llehouerou/streamview/internal/player"
)

const (
	busPollInterval = 50 * time.Millisecond
	eosTimeout      = 2 * time.Second
)

var requiredElements = []string{"parsebin", "capsfilter", "tee", "queue", "decodebin", "videoconvert"}

var initOnce sync.Once

// Engine is a player.Interface backed by GStreamer.
type Engine struct {
	mu        sync.Mutex
	opts      player.Options
	surface   player.Surface
	media     *player.Media
	pipeline  *gst.Pipeline
	recordBin *gst.Bin
	playing   bool
	released  bool

	events   chan player.Event
	stopping atomic.Bool
	eos      chan struct{}
	stop     chan struct{}
	done     chan struct{}
}

// New allocates a GStreamer engine. It matches player.Factory.
func New(opts player.Options) (player.Interface, error) {
	initOnce.Do(func() { gst.Init(nil) })

	if err := checkElements(requiredElements); err != nil {
		return nil, err
	}

	slog.Debug("gstreamer: engine created", "options", opts.Args())

	return &Engine{
		opts:   opts,
		events: make(chan player.Event, player.EventBufferSize),
	}, nil
}

// checkElements looks up the factories only; no element is instantiated.
func checkElements(names []string) error {
	var missing []string
	for _, name := range names {
		if gst.Find(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("gstreamer elements unavailable: %s", strings.Join(missing, ", "))
	}
	return nil
}

// AttachOutput binds video output to s. A running pipeline picks it up on
// the next Play.
func (e *Engine) AttachOutput(s player.Surface) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return player.ErrReleased
	}
	if s == nil {
		return errors.New("nil surface")
	}
	e.surface = s
	return nil
}

// DetachOutput unbinds video output.
func (e *Engine) DetachOutput() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface = nil
	return nil
}

// SetMedia replaces the media binding.
func (e *Engine) SetMedia(m *player.Media) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return player.ErrReleased
	}
	e.media = m
	return nil
}

// Media returns the current media binding.
func (e *Engine) Media() *player.Media {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.media
}

// AddMediaOption adds opt to the current binding. A recording option added
// while playing attaches a recording branch to the live pipeline.
func (e *Engine) AddMediaOption(opt player.MediaOption) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return player.ErrReleased
	}
	if e.media == nil {
		return errors.New("no media")
	}
	e.media.AddOption(opt)

	if opt.Name == player.OptRecordTo && e.playing && e.recordBin == nil {
		if err := e.attachRecordBranchLocked(opt.Value); err != nil {
			e.media.RemoveOption(player.OptRecordTo)
			return err
		}
	}
	return nil
}

// RemoveMediaOption removes an option from the current binding. A live
// recording branch keeps running until the pipeline stops.
func (e *Engine) RemoveMediaOption(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.media != nil {
		e.media.RemoveOption(name)
	}
	return nil
}

// Play builds a pipeline for the current binding and starts it. Playback is
// confirmed later by an EventPlaying.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return player.ErrReleased
	}
	if e.media == nil {
		return errors.New("no media")
	}

	e.teardownLocked()

	sink := ""
	if e.surface != nil {
		sink = e.surface.VideoSink()
	}
	desc := pipelineDescription(e.opts, e.media, sink)
	slog.Debug("gstreamer: building pipeline",
		"description", strings.Replace(desc, e.media.URL, e.media.Redacted(), 1))

	pipeline, err := gst.NewPipelineFromString(desc)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	e.pipeline = pipeline
	e.startWatchLocked(pipeline, e.media.ID)

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		e.teardownLocked()
		return fmt.Errorf("start pipeline: %w", err)
	}
	e.playing = true
	return nil
}

// Stop drains the pipeline with EOS so muxers can finalise, then tears it
// down. Stopping an idle engine is a no-op.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked()
	return nil
}

// IsPlaying reports whether a pipeline is running.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Events returns the engine event channel.
func (e *Engine) Events() <-chan player.Event { return e.events }

// Release stops playback and closes the event channel. Idempotent.
func (e *Engine) Release() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return nil
	}
	e.teardownLocked()
	e.released = true
	e.surface = nil
	e.media = nil
	close(e.events)
	return nil
}

func (e *Engine) attachRecordBranchLocked(path string) error {
	bin, err := gst.NewBinFromString(recordBranchDescription(path), true)
	if err != nil {
		return fmt.Errorf("build recording branch: %w", err)
	}
	if err := e.pipeline.Add(bin.Element); err != nil {
		return fmt.Errorf("add recording branch: %w", err)
	}
	tee, err := e.pipeline.GetElementByName(teeName)
	if err != nil {
		return fmt.Errorf("find tee: %w", err)
	}
	if err := tee.Link(bin.Element); err != nil {
		return fmt.Errorf("link recording branch: %w", err)
	}
	bin.SyncStateWithParent()
	e.recordBin = bin
	slog.Info("gstreamer: recording branch attached", "path", path)
	return nil
}

// teardownLocked stops the running pipeline, if any. It sends EOS first and
// waits briefly so a recording branch writes its trailer.
func (e *Engine) teardownLocked() {
	if e.pipeline == nil {
		return
	}

	if e.playing {
		e.stopping.Store(true)
		if e.pipeline.SendEvent(gst.NewEOSEvent()) {
			select {
			case <-e.eos:
			case <-time.After(eosTimeout):
				slog.Warn("gstreamer: timed out waiting for EOS")
			}
		}
	}

	if err := e.pipeline.SetState(gst.StateNull); err != nil {
		slog.Warn("gstreamer: failed to set pipeline to NULL", "error", err)
	}

	close(e.stop)
	<-e.done
	e.stopping.Store(false)

	e.pipeline = nil
	e.recordBin = nil
	e.playing = false
}

func (e *Engine) startWatchLocked(pipeline *gst.Pipeline, mediaID string) {
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	e.eos = make(chan struct{}, 1)
	go e.watch(pipeline, mediaID, e.stop, e.done, e.eos)
}

// watch maps bus messages to engine events. It never takes e.mu.
func (e *Engine) watch(pipeline *gst.Pipeline, mediaID string, stop <-chan struct{}, done chan<- struct{}, eos chan<- struct{}) {
	defer close(done)

	bus := pipeline.GetPipelineBus()
	for {
		select {
		case <-stop:
			return
		default:
		}

		msg := bus.TimedPop(busPollInterval)
		if msg == nil {
			continue
		}

		switch msg.Type() {
		case gst.MessageEOS:
			if e.stopping.Load() {
				select {
				case eos <- struct{}{}:
				default:
				}
				continue
			}
			slog.Info("gstreamer: end of stream", "media_id", mediaID)
			e.emit(player.Event{Type: player.EventEndReached, MediaID: mediaID}, stop)

		case gst.MessageError:
			gerr := msg.ParseError()
			slog.Error("gstreamer: pipeline error",
				"error", gerr.Error(),
				"debug", gerr.DebugString(),
				"media_id", mediaID,
			)
			e.emit(player.Event{
				Type:    player.EventEncounteredError,
				MediaID: mediaID,
				Err:     errors.New(gerr.Error()),
			}, stop)

		case gst.MessageStateChanged:
			if msg.Source() != pipeline.GetName() {
				continue
			}
			_, newState := msg.ParseStateChanged()
			if newState == gst.StatePlaying {
				e.emit(player.Event{Type: player.EventPlaying, MediaID: mediaID}, stop)
			}

		case gst.MessageBuffering:
			e.emitBuffering(player.Event{
				Type:      player.EventBuffering,
				MediaID:   mediaID,
				Buffering: float64(msg.ParseBuffering()),
			})
		}
	}
}

// emit blocks until the event is queued or the watcher is stopped.
func (e *Engine) emit(ev player.Event, stop <-chan struct{}) {
	select {
	case e.events <- ev:
	case <-stop:
	}
}

// emitBuffering drops progress updates when the consumer is behind.
func (e *Engine) emitBuffering(ev player.Event) {
	select {
	case e.events <- ev:
	default:
	}
}

// Verify Engine implements player.Interface at compile time.
var _ player.Interface = (*Engine)(nil)
