package hotkey

import (
	"strings"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// Combo is a parsed key combination such as ctrl+alt+t: at least one modifier
// plus exactly one key. The zero value is not a valid combo.
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Super bool
	Key   string
}

// ParseCombo parses a "+"-separated combination string. Modifier aliases
// follow common usage: control, win, cmd and meta are accepted. The key must
// come last.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt":
			c.Alt = true
		case "super", "win", "cmd", "meta":
			c.Super = true
		case "":
			return Combo{}, errors.Errorf("empty element in hotkey %q", s)
		default:
			if i != len(parts)-1 {
				return Combo{}, errors.Errorf("unknown modifier %q in hotkey %q", part, s)
			}
			c.Key = part
		}
	}
	if c.Key == "" {
		return Combo{}, errors.Errorf("hotkey %q has no key", s)
	}
	if !c.Ctrl && !c.Shift && !c.Alt && !c.Super {
		return Combo{}, errors.Errorf("hotkey %q has no modifier", s)
	}
	return c, nil
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Super {
		parts = append(parts, "super")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// X11Mask returns the modifier mask for a key grab. Alt is Mod1 and Super is
// Mod4, which holds on stock X keyboard maps.
func (c Combo) X11Mask() uint16 {
	var m uint16
	if c.Ctrl {
		m |= xproto.ModMaskControl
	}
	if c.Shift {
		m |= xproto.ModMaskShift
	}
	if c.Alt {
		m |= xproto.ModMask1
	}
	if c.Super {
		m |= xproto.ModMask4
	}
	return m
}

// GSettingsBinding renders the combo in the GTK accelerator syntax the GNOME
// custom-keybinding schema expects, e.g. "<Control><Alt>t".
func (c Combo) GSettingsBinding() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("<Control>")
	}
	if c.Shift {
		b.WriteString("<Shift>")
	}
	if c.Alt {
		b.WriteString("<Alt>")
	}
	if c.Super {
		b.WriteString("<Super>")
	}
	b.WriteString(c.Key)
	return b.String()
}

// KdeBinding renders the combo as a KDE global shortcut, e.g. "Ctrl+Alt+T".
func (c Combo) KdeBinding() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Super {
		parts = append(parts, "Meta")
	}
	key := c.Key
	if len(key) == 1 {
		key = strings.ToUpper(key)
	}
	return strings.Join(append(parts, key), "+")
}

// PortalTrigger renders the combo as a preferred_trigger string for the
// desktop portal's global-shortcuts interface.
func (c Combo) PortalTrigger() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "CTRL")
	}
	if c.Shift {
		parts = append(parts, "SHIFT")
	}
	if c.Alt {
		parts = append(parts, "ALT")
	}
	if c.Super {
		parts = append(parts, "LOGO")
	}
	return strings.Join(append(parts, c.Key), "+")
}
