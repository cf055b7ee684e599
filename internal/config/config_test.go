//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/recording"
)

func boolPtr(b bool) *bool { return &b }

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/Videos", filepath.Join(home, "Videos")},
		{"tilde with nested path", "~/Videos/cams/front", filepath.Join(home, "Videos", "cams", "front")},
		{"absolute path unchanged", "/srv/recordings", "/srv/recordings"},
		{"relative path unchanged", "recordings/cams", "recordings/cams"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() = %v, want 2 paths", paths)
	}
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}
	if filepath.Base(filepath.Dir(paths[0])) != appName {
		t.Errorf("first config path = %q, want it under %s/", paths[0], appName)
	}
}

func TestLoadFrom_NoFiles(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.URL != "" {
		t.Errorf("URL = %q, want empty", cfg.URL)
	}
	if !cfg.NotificationsEnabled() || !cfg.MPRISEnabled() || !cfg.KeepPlayingInCompact() || !cfg.CompactOnBlur() {
		t.Error("toggles should default to enabled")
	}
}

func TestLoadFrom_FullConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
url = "  rtsp://camera.local/stream  "
log_level = "debug"

[engine]
network_caching_ms = 300
hardware_decode = true
video_sink = "waylandsink"

[recordings]
dir = "/srv/recordings"
prefix = "frontdoor"

[ui]
compact_on_start = true
compact_on_blur = false
keep_playing_in_compact = false

[notifications]
enabled = false

[mpris]
enabled = false
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.URL != "rtsp://camera.local/stream" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() = %q", cfg.GetLogLevel())
	}
	ec := cfg.GetEngineConfig()
	if ec.NetworkCachingMs != 300 || !ec.HardwareDecode || ec.VideoSink != "waylandsink" {
		t.Errorf("GetEngineConfig() = %+v", ec)
	}
	rc := cfg.GetRecordingsConfig()
	if rc.Dir != "/srv/recordings" || rc.Prefix != "frontdoor" {
		t.Errorf("GetRecordingsConfig() = %+v", rc)
	}
	if !cfg.UI.CompactOnStart {
		t.Error("CompactOnStart should be true")
	}
	if cfg.KeepPlayingInCompact() {
		t.Error("KeepPlayingInCompact() should be false")
	}
	if cfg.CompactOnBlur() {
		t.Error("CompactOnBlur() should be false")
	}
	if cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() should be false")
	}
	if cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() should be false")
	}
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	global := writeConfig(t, t.TempDir(), `
url = "rtsp://global/stream"
[engine]
network_caching_ms = 500
`)
	local := writeConfig(t, t.TempDir(), `
url = "rtsp://local/stream"
`)

	cfg, err := LoadFrom(global, local)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.URL != "rtsp://local/stream" {
		t.Errorf("URL = %q, want local override", cfg.URL)
	}
	if cfg.Engine.NetworkCachingMs != 500 {
		t.Errorf("NetworkCachingMs = %d, want value kept from first file", cfg.Engine.NetworkCachingMs)
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "url = [unterminated")

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid TOML, got nil")
	}
}

func TestLoad_ReadsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `url = "rtsp://cwd/stream"`)
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "rtsp://cwd/stream" {
		t.Errorf("URL = %q", cfg.URL)
	}
}

func TestLoadFrom_RecordingsDirExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	path := writeConfig(t, t.TempDir(), `
[recordings]
dir = "~/Videos/cams"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if want := filepath.Join(home, "Videos", "cams"); cfg.Recordings.Dir != want {
		t.Errorf("Recordings.Dir = %q, want %q", cfg.Recordings.Dir, want)
	}
}

func TestGetEngineConfig_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		engine EngineConfig
	}{
		{"zero values", EngineConfig{}},
		{"negative caching", EngineConfig{NetworkCachingMs: -5}},
		{"caching too large", EngineConfig{NetworkCachingMs: maxNetworkCachingMs + 1}},
		{"blank sink", EngineConfig{VideoSink: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Engine: tt.engine}
			ec := cfg.GetEngineConfig()

			if ec.NetworkCachingMs <= 0 && tt.engine.NetworkCachingMs <= 0 {
				t.Errorf("NetworkCachingMs = %d, want default", ec.NetworkCachingMs)
			}
			if ec.NetworkCachingMs > maxNetworkCachingMs {
				t.Errorf("NetworkCachingMs = %d, want default", ec.NetworkCachingMs)
			}
			if ec.VideoSink == "" {
				t.Error("VideoSink should default")
			}
		})
	}
}

func TestGetEngineConfig_DefaultValues(t *testing.T) {
	ec := (&Config{}).GetEngineConfig()

	if ec.NetworkCachingMs != 1000 {
		t.Errorf("NetworkCachingMs = %d, want 1000", ec.NetworkCachingMs)
	}
	if ec.VideoSink != DefaultVideoSink {
		t.Errorf("VideoSink = %q, want %q", ec.VideoSink, DefaultVideoSink)
	}
	if ec.HardwareDecode {
		t.Error("HardwareDecode should default to false")
	}
}

func TestPlayerOptions(t *testing.T) {
	cfg := Config{Engine: EngineConfig{NetworkCachingMs: 250, HardwareDecode: true}}

	opts := cfg.PlayerOptions()

	if opts.NetworkCaching != 250*time.Millisecond {
		t.Errorf("NetworkCaching = %v", opts.NetworkCaching)
	}
	if !opts.HardwareDecode {
		t.Error("HardwareDecode should follow config")
	}
	def := player.DefaultOptions()
	if opts.ForceTCP != def.ForceTCP || opts.DropLateFrames != def.DropLateFrames || opts.SkipFrames != def.SkipFrames {
		t.Errorf("fixed options changed: %+v", opts)
	}
}

func TestGetRecordingsConfig_Defaults(t *testing.T) {
	rc := (&Config{}).GetRecordingsConfig()

	if rc.Dir != recording.DefaultDir() {
		t.Errorf("Dir = %q, want %q", rc.Dir, recording.DefaultDir())
	}
	if rc.Prefix != recording.DefaultPrefix {
		t.Errorf("Prefix = %q, want %q", rc.Prefix, recording.DefaultPrefix)
	}
}

func TestToggles(t *testing.T) {
	tests := []struct {
		name string
		val  *bool
		want bool
	}{
		{"unset", nil, true},
		{"true", boolPtr(true), true},
		{"false", boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				UI:            UIConfig{KeepPlayingInCompact: tt.val},
				Notifications: NotificationsConfig{Enabled: tt.val},
				MPRIS:         MPRISConfig{Enabled: tt.val},
			}
			if cfg.KeepPlayingInCompact() != tt.want {
				t.Errorf("KeepPlayingInCompact() = %v, want %v", cfg.KeepPlayingInCompact(), tt.want)
			}
			if cfg.NotificationsEnabled() != tt.want {
				t.Errorf("NotificationsEnabled() = %v, want %v", cfg.NotificationsEnabled(), tt.want)
			}
			if cfg.MPRISEnabled() != tt.want {
				t.Errorf("MPRISEnabled() = %v, want %v", cfg.MPRISEnabled(), tt.want)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := map[string]string{
		"":        "info",
		"DEBUG":   "debug",
		" warn ":  "warn",
		"error":   "error",
		"verbose": "info",
	}

	for in, want := range tests {
		cfg := Config{LogLevel: in}
		if got := cfg.GetLogLevel(); got != want {
			t.Errorf("GetLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
