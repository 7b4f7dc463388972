//go:build linux

package wm

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
)

type fakeWindow struct {
	presented   int
	unminimized int
	minimized   int
}

func (f *fakeWindow) Present()    { f.presented++ }
func (f *fakeWindow) Unminimize() { f.unminimized++ }
func (f *fakeWindow) Minimize()   { f.minimized++ }

func TestDegradedManagerNeverPanics(t *testing.T) {
	// With no DISPLAY the X11 connection fails and the manager must fall
	// back to toolkit-only behavior.
	t.Setenv("DISPLAY", "")

	m := New(display.X11, zerolog.Nop())
	defer m.Close()

	win := &fakeWindow{}
	m.Setup(win, 42)
	m.Focus(win, 42)
	m.Minimize(win)

	if win.presented != 1 || win.unminimized != 1 || win.minimized != 1 {
		t.Errorf("toolkit calls not forwarded: %+v", win)
	}
	if got := m.Locate("anything"); got != 0 {
		t.Errorf("Locate on degraded manager = %d, want 0", got)
	}
}

func TestWaylandManagerUsesToolkitOnly(t *testing.T) {
	m := New(display.Wayland, zerolog.Nop())
	defer m.Close()

	win := &fakeWindow{}
	m.Focus(win, 0)

	if win.presented != 1 || win.unminimized != 1 {
		t.Errorf("Focus did not go through toolkit calls: %+v", win)
	}
}

func TestFocusIsIdempotent(t *testing.T) {
	m := New(display.Wayland, zerolog.Nop())
	defer m.Close()

	win := &fakeWindow{}
	m.Focus(win, 0)
	m.Focus(win, 0)

	if win.presented != 2 || win.minimized != 0 {
		t.Errorf("repeated Focus changed behavior: %+v", win)
	}
}

func TestFocusWithNilWindow(t *testing.T) {
	m := New(display.Wayland, zerolog.Nop())
	defer m.Close()

	// The UI layer may not have a window yet at trigger time.
	m.Focus(nil, 0)
	m.Minimize(nil)
	m.Setup(nil, 0)
}

func TestCloseIsSafeTwice(t *testing.T) {
	t.Setenv("DISPLAY", "")
	m := New(display.X11, zerolog.Nop())
	m.Close()
	m.Close()
}
