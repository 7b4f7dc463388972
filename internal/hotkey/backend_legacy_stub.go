//go:build linux && !legacyhotkey

package hotkey

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LegacyBackend stub for builds without the legacyhotkey tag. The real
// backend links golang.design/x/hotkey, whose init aborts the process when
// no X display can be opened; a headless or Wayland-only session must not
// crash at startup just because the library is linked. This stub keeps the
// backend selectable without linking it.
type LegacyBackend struct {
	log zerolog.Logger
}

func NewLegacyBackend(log zerolog.Logger) *LegacyBackend {
	return &LegacyBackend{log: log}
}

func (b *LegacyBackend) Name() string { return "legacy-library" }

func (b *LegacyBackend) Available() bool { return false }

func (b *LegacyBackend) Register(combo Combo, fire func()) error {
	return errors.New("legacy hotkey library not compiled in (build with -tags legacyhotkey)")
}

func (b *LegacyBackend) Close() error { return nil }
