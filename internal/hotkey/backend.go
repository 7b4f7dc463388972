// Package hotkey detects the global capture shortcut. Several backends exist
// because no single registration mechanism covers every Linux desktop: a
// native X11 key grab, the golang.design library, the desktop portal's
// global-shortcuts interface, and shell-level shortcut registration that
// delivers through a marker file. The Service picks backends per display
// server and runs a marker-file poll underneath all of them, so a trigger is
// never lost just because the preferred mechanism failed.
package hotkey

// Backend is one hotkey registration mechanism. Register arranges for fire to
// be called on the backend's own goroutine every time the combination is
// pressed; delivery through a marker file instead of fire is also valid (the
// shell backend works that way). Close releases any grabs or subscriptions.
type Backend interface {
	Name() string
	Available() bool
	Register(combo Combo, fire func()) error
	Close() error
}
