package gstreamer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/streamview/internal/player"
)

// videoCaps keeps only the parsed video stream and fixes it to the
// packetized formats mp4mux accepts, so a recording branch attached while
// playing links without renegotiation.
const videoCaps = "video/x-h264,stream-format=avc,alignment=au;" +
	"video/x-h265,stream-format=hvc1,alignment=au;" +
	"image/jpeg"

// rtpVideoCaps selects the video stream of an RTSP session. Other streams
// (camera audio, metadata) stay unlinked.
const rtpVideoCaps = "application/x-rtp,media=video"

const (
	teeName          = "t"
	fallbackSink     = "fakesink"
	fragmentDuration = time.Second
)

// pipelineDescription builds the gst-launch description for one media binding.
//
//	source → parsebin → video caps → tee ┬→ queue → decodebin → videoconvert → sink
//	                                     └→ queue → mp4mux → filesink   (when recording)
func pipelineDescription(opts player.Options, m *player.Media, sink string) string {
	var b strings.Builder

	b.WriteString(sourceDescription(opts, m))
	if m.IsRTSP() {
		b.WriteString(" ! " + rtpVideoCaps)
	}
	b.WriteString(" ! parsebin ! capsfilter caps=" + quote(videoCaps))
	b.WriteString(" ! tee name=" + teeName)

	b.WriteString(" " + teeName + ". ! ")
	b.WriteString(queueDescription(opts))
	b.WriteString(" ! decodebin")
	if !opts.HardwareDecode {
		b.WriteString(" force-sw-decoders=true")
	}
	b.WriteString(" ! videoconvert ! ")
	b.WriteString(sinkDescription(m, sink))

	if path := m.RecordPath(); path != "" {
		b.WriteString(" " + teeName + ". ! ")
		b.WriteString(recordBranchDescription(path))
	}

	return b.String()
}

func sourceDescription(opts player.Options, m *player.Media) string {
	caching := opts.NetworkCaching
	if v, ok := m.Option(player.OptNetworkCaching); ok {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			caching = time.Duration(ms) * time.Millisecond
		}
	}

	if m.IsRTSP() {
		desc := "rtspsrc location=" + quote(m.URL) +
			" latency=" + strconv.FormatInt(caching.Milliseconds(), 10)
		if opts.ForceTCP {
			desc += " protocols=tcp"
		}
		return desc
	}
	return "urisourcebin uri=" + quote(m.URL) +
		" buffer-duration=" + strconv.FormatInt(caching.Nanoseconds(), 10)
}

// queueDescription keeps every frame unless the options allow dropping.
func queueDescription(opts player.Options) string {
	if opts.DropLateFrames || opts.SkipFrames {
		return "queue leaky=downstream max-size-buffers=2"
	}
	return "queue"
}

func sinkDescription(m *player.Media, sink string) string {
	if sink == "" {
		sink = fallbackSink
	}
	if v, ok := m.Option(player.OptClockSynchro); ok && v == "0" {
		return sink + " sync=false"
	}
	return sink
}

// recordBranchDescription muxes the parsed stream into a fragmented mp4, so
// a recording cut short by a crash is still playable.
func recordBranchDescription(path string) string {
	return fmt.Sprintf("queue ! mp4mux fragment-duration=%d ! filesink location=%s",
		fragmentDuration.Milliseconds(), quote(path))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
