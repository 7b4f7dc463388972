// Package display probes the process environment to decide which display
// server protocol the session runs on, and which desktop shell when that
// matters (Wayland shortcut registration).
package display

import (
	"os"
	"strings"
)

// Server identifies the display-server protocol of the current session.
type Server int

const (
	Unknown Server = iota
	X11
	Wayland
)

func (s Server) String() string {
	switch s {
	case X11:
		return "X11"
	case Wayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// Shell identifies the desktop shell. Only meaningful on Wayland, where
// global shortcut registration goes through shell-specific tooling.
type Shell int

const (
	Generic Shell = iota
	Gnome
	Kde
)

func (s Shell) String() string {
	switch s {
	case Gnome:
		return "GNOME"
	case Kde:
		return "KDE"
	default:
		return "Generic"
	}
}

// Detect determines the display server from the environment. The session
// type variable is authoritative when it names wayland; otherwise the
// presence of a protocol-specific connection variable decides. The result
// is computed from a single environment snapshot and has no side effects,
// so callers are free to cache it for the process lifetime.
func Detect() Server {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return Wayland
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return Wayland
	}
	if os.Getenv("DISPLAY") != "" {
		return X11
	}
	return Unknown
}

// DetectShell inspects XDG_CURRENT_DESKTOP. Compound values such as
// "ubuntu:GNOME" are common, hence the substring match.
func DetectShell() Shell {
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	switch {
	case strings.Contains(desktop, "gnome"):
		return Gnome
	case strings.Contains(desktop, "kde"):
		return Kde
	default:
		return Generic
	}
}
