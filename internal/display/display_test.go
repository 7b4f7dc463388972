package display

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_SESSION_TYPE", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_CURRENT_DESKTOP", "")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		sessionType string
		wayland     string
		display     string
		want        Server
	}{
		{"session type wins", "wayland", "", ":0", Wayland},
		{"session type case insensitive", "Wayland", "", "", Wayland},
		{"wayland display set", "", "wayland-0", ":0", Wayland},
		{"x11 display only", "", "", ":0", X11},
		{"x11 session type falls through to display", "x11", "", ":1", X11},
		{"nothing set", "", "", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)
			t.Setenv("DISPLAY", tt.display)

			if got := Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectShell(t *testing.T) {
	tests := []struct {
		desktop string
		want    Shell
	}{
		{"GNOME", Gnome},
		{"ubuntu:GNOME", Gnome},
		{"gnome-classic", Gnome},
		{"KDE", Kde},
		{"kde-plasma", Kde},
		{"sway", Generic},
		{"", Generic},
	}

	for _, tt := range tests {
		t.Run("desktop="+tt.desktop, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("XDG_CURRENT_DESKTOP", tt.desktop)

			if got := DetectShell(); got != tt.want {
				t.Errorf("DetectShell() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringers(t *testing.T) {
	if X11.String() != "X11" || Wayland.String() != "Wayland" || Unknown.String() != "Unknown" {
		t.Errorf("unexpected Server strings: %v %v %v", X11, Wayland, Unknown)
	}
	if Gnome.String() != "GNOME" || Kde.String() != "KDE" || Generic.String() != "Generic" {
		t.Errorf("unexpected Shell strings: %v %v %v", Gnome, Kde, Generic)
	}
}
