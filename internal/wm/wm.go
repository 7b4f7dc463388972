//go:build linux

// Package wm raises, focuses and minimizes the application window using the
// protocol appropriate to the current display server. On X11 it speaks the
// window-manager hint protocol directly; on Wayland only the toolkit-level
// presentation calls are available, which is enough for the local case.
package wm

import (
	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
)

// Window is the toolkit-side handle the UI layer hands us. Present must make
// the window visible and request input focus in toolkit terms; the manager
// layers protocol-level activation on top where the display server allows it.
type Window interface {
	Present()
	Unminimize()
	Minimize()
}

// Handle identifies the window to the display server. Zero means "not known";
// on Wayland there is never a usable handle.
type Handle uint32

// Manager drives window activation. Construct once at startup; the X11
// connection it may hold lives for the process lifetime and is only touched
// from the UI loop.
type Manager struct {
	log     zerolog.Logger
	wayland bool
	x11     *x11Conn
}

// New creates a Manager for the detected display server. Failure to open an
// X11 connection degrades the manager to toolkit-only behavior; activation
// is a convenience, never a reason to fail startup.
func New(server display.Server, log zerolog.Logger) *Manager {
	m := &Manager{log: log, wayland: server == display.Wayland}
	if !m.wayland {
		conn, err := connectX11()
		if err != nil {
			log.Warn().Err(err).Msg("no X11 connection; window activation degrades to toolkit calls")
		} else {
			m.x11 = conn
		}
	}
	return m
}

// Setup applies one-time window properties. On X11 the window is marked
// sticky (all workspaces) and kept above, so it stays reachable after the
// hotkey raises it.
func (m *Manager) Setup(win Window, id Handle) {
	if m.x11 == nil || id == 0 {
		return
	}
	if err := m.x11.setState(uint32(id), true, true); err != nil {
		m.log.Warn().Err(err).Msg("could not apply sticky/above window state")
	}
}

// Focus unminimizes and presents the window, then on X11 asks the window
// manager for activation via a client message to the root window. The second
// step exists because toolkit presentation alone does not reliably steal
// focus from another application's window under common X11 window managers.
// Focus is idempotent; calling it on an already focused window is harmless.
func (m *Manager) Focus(win Window, id Handle) {
	if win != nil {
		win.Unminimize()
		win.Present()
	}
	if m.x11 == nil || id == 0 {
		return
	}
	if err := m.x11.activate(uint32(id)); err != nil {
		m.log.Warn().Err(err).Msg("activation request failed")
	}
}

// Minimize delegates to the toolkit.
func (m *Manager) Minimize(win Window) {
	if win != nil {
		win.Minimize()
	}
}

// Locate searches the X11 window tree for a top-level window with the exact
// title. It returns zero when not running on X11 or when no window matches;
// the caller then falls back to marker-file signaling only.
func (m *Manager) Locate(title string) Handle {
	if m.x11 == nil {
		return 0
	}
	id, err := m.x11.findByTitle(title)
	if err != nil {
		m.log.Debug().Err(err).Str("title", title).Msg("window lookup failed")
		return 0
	}
	return Handle(id)
}

// Close releases the X11 connection. Safe on a degraded manager.
func (m *Manager) Close() {
	if m.x11 != nil {
		m.x11.close()
		m.x11 = nil
	}
}
