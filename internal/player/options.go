package player

import (
	"strconv"
	"time"
)

// DefaultNetworkCaching is the network buffer used for low-latency RTSP.
const DefaultNetworkCaching = 1000 * time.Millisecond

// Options is the fixed option set an engine is constructed with.
type Options struct {
	NetworkCaching time.Duration
	HardwareDecode bool
	ForceTCP       bool
	DropLateFrames bool
	SkipFrames     bool
}

// DefaultOptions returns options tuned for live camera streams: software
// decode, RTSP over TCP, and no frame dropping or skipping.
func DefaultOptions() Options {
	return Options{
		NetworkCaching: DefaultNetworkCaching,
		HardwareDecode: false,
		ForceTCP:       true,
		DropLateFrames: false,
		SkipFrames:     false,
	}
}

// Args renders the options as engine flags, mostly for logging.
func (o Options) Args() []string {
	args := []string{
		"--network-caching=" + strconv.FormatInt(o.NetworkCaching.Milliseconds(), 10),
	}
	if !o.HardwareDecode {
		args = append(args, "--avcodec-hw=none")
	}
	if o.ForceTCP {
		args = append(args, "--rtsp-tcp")
	}
	if !o.DropLateFrames {
		args = append(args, "--no-drop-late-frames")
	}
	if !o.SkipFrames {
		args = append(args, "--no-skip-frames")
	}
	return args
}
