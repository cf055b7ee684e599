package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamview/internal/app"
	"github.com/llehouerou/streamview/internal/config"
	"github.com/llehouerou/streamview/internal/mpris"
	"github.com/llehouerou/streamview/internal/notify"
	"github.com/llehouerou/streamview/internal/platform"
	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/player/gstreamer"
	"github.com/llehouerou/streamview/internal/recording"
	"github.com/llehouerou/streamview/internal/state"
	"github.com/llehouerou/streamview/internal/stderr"
)

func main() {
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/streamview/config.toml, then ./config.toml)")
	streamURL := flag.String("url", "", "Stream URL, overrides the configured one")
	flag.Parse()

	if *streamURL == "" && flag.NArg() > 0 {
		*streamURL = flag.Arg(0)
	}

	if err := run(*configPath, *streamURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, streamURL string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := openLog(cfg.GetLogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	// Priority: flag > config > last session.
	compactOnStart := cfg.UI.CompactOnStart
	saved, err := stateMgr.GetSession()
	if err != nil {
		logger.Warn("load saved session failed", "error", err)
	}
	if streamURL == "" {
		streamURL = cfg.URL
	}
	if saved != nil {
		if streamURL == "" {
			streamURL = saved.LastURL
		}
		compactOnStart = compactOnStart || saved.Compact
	}
	if streamURL == "" {
		return fmt.Errorf("no stream URL: pass -url or set url in config.toml")
	}

	// GStreamer and its plugins write to fd 2, which would corrupt the TUI.
	if err := stderr.Start(); err != nil {
		logger.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Stop()

	caps := platform.Detect(platform.CurrentEnv())
	logger.Info("starting", "url", player.RedactURL(streamURL), "compact", caps.CompactMode,
		"notifications", caps.Notifications, "media_keys", caps.MediaKeys)

	rc := cfg.GetRecordingsConfig()
	session := playback.New(gstreamer.New,
		playback.WithEngineOptions(cfg.PlayerOptions()),
		playback.WithRecordingPaths(recording.Namer{Dir: rc.Dir, Prefix: rc.Prefix}.Next),
		playback.WithLogger(logger),
	)
	lifecycle := playback.NewLifecycle(session, streamURL, caps,
		playback.KeepPlayingInCompact(cfg.KeepPlayingInCompact()),
	)
	defer lifecycle.Destroy()

	var notifier notify.Notifier
	if cfg.NotificationsEnabled() && caps.Notifications {
		if notifier, err = notify.New(); err != nil {
			logger.Warn("notifications unavailable", "error", err)
			notifier = nil
		}
	}

	if cfg.MPRISEnabled() && caps.MediaKeys {
		adapter, err := mpris.New(lifecycle)
		if err != nil {
			logger.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	m := app.New(app.Deps{
		Lifecycle:      lifecycle,
		Surface:        player.SinkSurface(cfg.GetEngineConfig().VideoSink),
		Notifier:       notifier,
		Store:          stateMgr,
		Caps:           caps,
		CompactOnStart: compactOnStart,
		CompactOnBlur:  cfg.CompactOnBlur(),
		Logger:         logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// openLog opens the log file under the XDG state directory. The terminal
// belongs to the TUI, so nothing is logged to it.
func openLog(level string) (*slog.Logger, func(), error) {
	path, err := xdg.StateFile("streamview/streamview.log")
	if err != nil {
		return nil, nil, fmt.Errorf("log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = f.Close() }, nil
}
