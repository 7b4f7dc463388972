//go:build linux && !legacyhotkey

package hotkey

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLegacyBackendStubIsInert(t *testing.T) {
	b := NewLegacyBackend(zerolog.Nop())

	if b.Available() {
		t.Error("stub reports available")
	}
	if err := b.Register(mustCombo(t, "ctrl+alt+t"), func() {}); err == nil {
		t.Error("stub Register succeeded, want error")
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}
