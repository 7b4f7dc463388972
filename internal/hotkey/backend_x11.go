//go:build linux

package hotkey

import (
	"os"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Lock modifiers the X server folds into the grab state. CapsLock is the
// lock mask; NumLock sits on Mod2 on stock keyboard maps.
const (
	capsLockMask uint16 = xproto.ModMaskLock
	numLockMask  uint16 = xproto.ModMask2
)

// X11Backend grabs the key combination on the root window, so the press is
// seen no matter which application holds focus. The grab is passive and
// asynchronous; other clients keep receiving their input.
type X11Backend struct {
	log zerolog.Logger
	xu  *xgbutil.XUtil
}

func NewX11Backend(log zerolog.Logger) *X11Backend {
	return &X11Backend{log: log}
}

func (b *X11Backend) Name() string { return "x11-grab" }

func (b *X11Backend) Available() bool { return os.Getenv("DISPLAY") != "" }

// Register grabs the chord in all four lock-modifier states, then starts the
// event loop. Any grab failure (typically BadAccess when another client holds
// the same chord) undoes nothing server-side but reports the error so the
// caller can fall back.
func (b *X11Backend) Register(combo Combo, fire func()) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return errors.Wrap(err, "connect to X server")
	}
	keybind.Initialize(xu)

	codes := keybind.StrToKeycodes(xu, combo.Key)
	if len(codes) == 0 {
		xu.Conn().Close()
		return errors.Errorf("no keycode maps to %q", combo.Key)
	}
	code := codes[0]

	base := combo.X11Mask()
	root := xu.RootWin()
	variants := []uint16{base, base | capsLockMask, base | numLockMask, base | capsLockMask | numLockMask}
	for _, mods := range variants {
		err := xproto.GrabKeyChecked(xu.Conn(), false, root, mods, code,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		if err != nil {
			xu.Conn().Close()
			return errors.Wrapf(err, "grab %s", combo)
		}
	}

	b.xu = xu
	go b.loop(xu, code, base, fire)
	b.log.Info().Str("combo", combo.String()).Msg("x11 key grab active")
	return nil
}

// loop takes the connection as a parameter rather than reading b.xu: Close
// runs on another goroutine and clears the field, and events queued before
// the close may still be delivered here. The loop exits only through the
// closed-connection return from WaitForEvent.
func (b *X11Backend) loop(xu *xgbutil.XUtil, code xproto.Keycode, base uint16, fire func()) {
	for {
		ev, err := xu.Conn().WaitForEvent()
		if ev == nil && err == nil {
			return // connection closed
		}
		if err != nil {
			b.log.Debug().Err(err).Msg("x11 event error")
			continue
		}
		press, ok := ev.(xproto.KeyPressEvent)
		if !ok {
			continue
		}
		// Ignore lock modifiers when matching; the grab variants above are
		// what allowed the event through in the first place.
		if press.Detail == code && press.State&^(capsLockMask|numLockMask) == base {
			fire()
		}
	}
}

func (b *X11Backend) Close() error {
	if b.xu != nil {
		b.xu.Conn().Close()
		b.xu = nil
	}
	return nil
}
