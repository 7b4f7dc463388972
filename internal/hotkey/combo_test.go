package hotkey

import "testing"

func TestParseCombo(t *testing.T) {
	tests := []struct {
		in   string
		want Combo
	}{
		{"ctrl+alt+t", Combo{Ctrl: true, Alt: true, Key: "t"}},
		{"Ctrl+Shift+P", Combo{Ctrl: true, Shift: true, Key: "p"}},
		{"super+space", Combo{Super: true, Key: "space"}},
		{"control+alt+f2", Combo{Ctrl: true, Alt: true, Key: "f2"}},
		{" ctrl+t ", Combo{Ctrl: true, Key: "t"}},
		{"win+meta+z", Combo{Super: true, Key: "z"}},
	}
	for _, tt := range tests {
		got, err := ParseCombo(tt.in)
		if err != nil {
			t.Errorf("ParseCombo(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCombo(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseComboRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"t",           // no modifier
		"ctrl+",       // trailing separator
		"ctrl++t",     // empty element
		"ctrl+alt",    // no key
		"ctrl+blah+t", // unknown modifier
	} {
		if _, err := ParseCombo(in); err == nil {
			t.Errorf("ParseCombo(%q) succeeded, want error", in)
		}
	}
}

func TestComboRenderings(t *testing.T) {
	c, err := ParseCombo("ctrl+alt+t")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.String(); got != "ctrl+alt+t" {
		t.Errorf("String() = %q", got)
	}
	if got := c.GSettingsBinding(); got != "<Control><Alt>t" {
		t.Errorf("GSettingsBinding() = %q", got)
	}
	if got := c.KdeBinding(); got != "Ctrl+Alt+T" {
		t.Errorf("KdeBinding() = %q", got)
	}
	if got := c.PortalTrigger(); got != "CTRL+ALT+t" {
		t.Errorf("PortalTrigger() = %q", got)
	}
}

func TestComboX11Mask(t *testing.T) {
	c, err := ParseCombo("ctrl+shift+alt+super+t")
	if err != nil {
		t.Fatal(err)
	}
	// control | shift | mod1 | mod4
	want := uint16(1<<2 | 1<<0 | 1<<3 | 1<<6)
	if got := c.X11Mask(); got != want {
		t.Errorf("X11Mask() = %#x, want %#x", got, want)
	}
}
