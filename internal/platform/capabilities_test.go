package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want Capabilities
	}{
		{
			name: "linux desktop",
			env:  Env{GOOS: "linux", SessionBusAddr: "unix:path=/run/user/1000/bus", Display: ":0"},
			want: Capabilities{CompactMode: true, Notifications: true, MediaKeys: true},
		},
		{
			name: "linux wayland without bus",
			env:  Env{GOOS: "linux", WaylandDisplay: "wayland-0"},
			want: Capabilities{CompactMode: true},
		},
		{
			name: "headless linux",
			env:  Env{GOOS: "linux"},
			want: Capabilities{},
		},
		{
			name: "darwin",
			env:  Env{GOOS: "darwin", SessionBusAddr: "ignored"},
			want: Capabilities{CompactMode: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.env); got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
