// Package platform resolves host capabilities once at startup so components
// receive them as plain flags instead of probing the host themselves.
package platform

import (
	"os"
	"runtime"
)

// Capabilities lists optional host features.
type Capabilities struct {
	CompactMode   bool // reduced-chrome presentation (picture-in-picture analogue)
	Notifications bool // desktop notifications over D-Bus
	MediaKeys     bool // MPRIS remote control over D-Bus
}

// Env is the subset of the host environment Detect looks at.
type Env struct {
	GOOS           string
	SessionBusAddr string
	Display        string
	WaylandDisplay string
}

// CurrentEnv reads Env from the running process.
func CurrentEnv() Env {
	return Env{
		GOOS:           runtime.GOOS,
		SessionBusAddr: os.Getenv("DBUS_SESSION_BUS_ADDRESS"),
		Display:        os.Getenv("DISPLAY"),
		WaylandDisplay: os.Getenv("WAYLAND_DISPLAY"),
	}
}

// Detect resolves capabilities from env. Compact mode needs a graphical
// session, since the video keeps playing in its own window while the
// terminal chrome is reduced.
func Detect(env Env) Capabilities {
	hasBus := env.GOOS == "linux" && env.SessionBusAddr != ""
	graphical := env.GOOS == "darwin" || env.GOOS == "windows" ||
		env.Display != "" || env.WaylandDisplay != ""

	return Capabilities{
		CompactMode:   graphical,
		Notifications: hasBus,
		MediaKeys:     hasBus,
	}
}
