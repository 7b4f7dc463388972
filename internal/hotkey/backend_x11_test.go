//go:build linux

package hotkey

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestX11BackendUnavailableWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	if NewX11Backend(zerolog.Nop()).Available() {
		t.Error("backend reports available without a display")
	}
}

func TestX11BackendCloseWithoutRegister(t *testing.T) {
	b := NewX11Backend(zerolog.Nop())

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}
