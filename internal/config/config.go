package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/recording"
)

const appName = "streamview"

const (
	DefaultVideoSink = "autovideosink"
	DefaultLogLevel  = "info"

	maxNetworkCachingMs = 60000
)

type Config struct {
	URL      string `koanf:"url"`       // stream played on startup
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"

	Engine        EngineConfig        `koanf:"engine"`
	Recordings    RecordingsConfig    `koanf:"recordings"`
	UI            UIConfig            `koanf:"ui"`
	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
}

// EngineConfig holds media engine settings.
type EngineConfig struct {
	NetworkCachingMs int    `koanf:"network_caching_ms"` // source buffering (default: 1000)
	HardwareDecode   bool   `koanf:"hardware_decode"`    // default: false (software decode)
	VideoSink        string `koanf:"video_sink"`         // GStreamer sink element (default: autovideosink)
}

// RecordingsConfig holds where recordings go.
type RecordingsConfig struct {
	Dir    string `koanf:"dir"`    // default: XDG videos dir + /streamview
	Prefix string `koanf:"prefix"` // default: stream_recording
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	CompactOnStart       bool  `koanf:"compact_on_start"`
	CompactOnBlur        *bool `koanf:"compact_on_blur"`         // default: true
	KeepPlayingInCompact *bool `koanf:"keep_playing_in_compact"` // default: true
}

// NotificationsConfig toggles desktop notifications.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// MPRISConfig toggles the MPRIS D-Bus interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.Recordings.Dir != "" {
		cfg.Recordings.Dir = expandPath(cfg.Recordings.Dir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/streamview/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetEngineConfig returns the engine configuration with defaults applied.
func (c *Config) GetEngineConfig() EngineConfig {
	cfg := c.Engine

	if cfg.NetworkCachingMs <= 0 || cfg.NetworkCachingMs > maxNetworkCachingMs {
		cfg.NetworkCachingMs = int(player.DefaultNetworkCaching / time.Millisecond)
	}
	cfg.VideoSink = strings.TrimSpace(cfg.VideoSink)
	if cfg.VideoSink == "" {
		cfg.VideoSink = DefaultVideoSink
	}

	return cfg
}

// PlayerOptions converts the engine configuration to engine options.
func (c *Config) PlayerOptions() player.Options {
	ec := c.GetEngineConfig()
	opts := player.DefaultOptions()
	opts.NetworkCaching = time.Duration(ec.NetworkCachingMs) * time.Millisecond
	opts.HardwareDecode = ec.HardwareDecode
	return opts
}

// GetRecordingsConfig returns the recordings configuration with defaults
// applied.
func (c *Config) GetRecordingsConfig() RecordingsConfig {
	cfg := c.Recordings

	if cfg.Dir == "" {
		cfg.Dir = recording.DefaultDir()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = recording.DefaultPrefix
	}

	return cfg
}

// KeepPlayingInCompact returns true unless disabled.
func (c *Config) KeepPlayingInCompact() bool {
	return c.UI.KeepPlayingInCompact == nil || *c.UI.KeepPlayingInCompact
}

// CompactOnBlur returns true unless disabled.
func (c *Config) CompactOnBlur() bool {
	return c.UI.CompactOnBlur == nil || *c.UI.CompactOnBlur
}

// NotificationsEnabled returns true unless disabled.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications.Enabled == nil || *c.Notifications.Enabled
}

// MPRISEnabled returns true unless disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// GetLogLevel returns the configured log level, or "info".
func (c *Config) GetLogLevel() string {
	switch l := strings.ToLower(strings.TrimSpace(c.LogLevel)); l {
	case "debug", "info", "warn", "error":
		return l
	default:
		return DefaultLogLevel
	}
}
