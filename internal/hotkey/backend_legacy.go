//go:build linux && legacyhotkey

package hotkey

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.design/x/hotkey"
)

// The library exposes Mod2 (NumLock) but has no name for the CapsLock mask.
const capsLockModifier hotkey.Modifier = 1 << 1

// LegacyBackend registers through golang.design/x/hotkey. It exists as a
// config-selectable alternative to the native grab for setups where the
// library's event handling behaves better, and covers only X11.
//
// The library's init aborts the process when it cannot open an X display,
// so this backend is opt-in: build with -tags legacyhotkey to link it.
// Without the tag the stub in backend_legacy_stub.go is compiled instead.
type LegacyBackend struct {
	log      zerolog.Logger
	keys     []*hotkey.Hotkey
	stop     chan struct{}
	stopOnce sync.Once
}

func NewLegacyBackend(log zerolog.Logger) *LegacyBackend {
	return &LegacyBackend{log: log, stop: make(chan struct{})}
}

func (b *LegacyBackend) Name() string { return "legacy-library" }

func (b *LegacyBackend) Available() bool { return os.Getenv("DISPLAY") != "" }

// Register creates one library registration per lock-modifier state, so the
// chord still fires with CapsLock or NumLock engaged.
func (b *LegacyBackend) Register(combo Combo, fire func()) error {
	key, ok := keyMap[combo.Key]
	if !ok {
		return errors.Errorf("key %q not supported by the legacy library", combo.Key)
	}

	var mods []hotkey.Modifier
	if combo.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if combo.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if combo.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if combo.Super {
		mods = append(mods, hotkey.Mod4)
	}

	variants := [][]hotkey.Modifier{
		mods,
		append(append([]hotkey.Modifier(nil), mods...), hotkey.Mod2),
		append(append([]hotkey.Modifier(nil), mods...), capsLockModifier),
		append(append([]hotkey.Modifier(nil), mods...), hotkey.Mod2, capsLockModifier),
	}
	for _, v := range variants {
		hk := hotkey.New(v, key)
		if err := hk.Register(); err != nil {
			b.unregister()
			return errors.Wrapf(err, "register %s", combo)
		}
		b.keys = append(b.keys, hk)
		go b.listen(hk, fire)
	}
	b.log.Info().Str("combo", combo.String()).Msg("legacy hotkey registered")
	return nil
}

func (b *LegacyBackend) listen(hk *hotkey.Hotkey, fire func()) {
	for {
		select {
		case <-b.stop:
			return
		case <-hk.Keydown():
			fire()
		}
	}
}

func (b *LegacyBackend) unregister() {
	for _, hk := range b.keys {
		if err := hk.Unregister(); err != nil {
			b.log.Debug().Err(err).Msg("unregister hotkey")
		}
	}
	b.keys = nil
}

func (b *LegacyBackend) Close() error {
	b.stopOnce.Do(func() { close(b.stop) })
	b.unregister()
	return nil
}
