//go:build linux

package hotkey

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
)

// gnomeKeybindingPath is the dconf node the capture shortcut lives under.
const gnomeKeybindingPath = "/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings/swiftlingo/"

// ShellBackend registers the shortcut with the desktop's own shortcut
// daemon: the daemon runs a one-line script that touches the hotkey marker,
// and the press reaches this process through the marker-file poll rather
// than the fire callback. This works on Wayland, where clients cannot grab
// keys themselves.
type ShellBackend struct {
	shell      display.Shell
	scriptPath string
	markerPath string
	log        zerolog.Logger
	notify     func(title, message string)

	run func(name string, args ...string) error
}

// NewShellBackend returns a backend that binds scriptPath as a desktop
// shortcut touching markerPath. notify may be nil.
func NewShellBackend(shell display.Shell, scriptPath, markerPath string, notify func(title, message string), log zerolog.Logger) *ShellBackend {
	return &ShellBackend{
		shell:      shell,
		scriptPath: scriptPath,
		markerPath: markerPath,
		log:        log,
		notify:     notify,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (b *ShellBackend) Name() string { return "shell-shortcut" }

func (b *ShellBackend) Available() bool { return true }

// Register writes the trigger script and binds it through the desktop's
// settings tooling. fire is unused: delivery happens via the marker file.
// On desktops without known tooling the user gets manual instructions and
// Register still succeeds, since the script alone is usable.
func (b *ShellBackend) Register(combo Combo, fire func()) error {
	if err := b.writeScript(); err != nil {
		return err
	}
	switch b.shell {
	case display.Gnome:
		b.registerGnome(combo)
	case display.Kde:
		b.registerKde(combo)
	default:
		b.manualInstructions(combo)
	}
	return nil
}

func (b *ShellBackend) writeScript() error {
	if err := os.MkdirAll(filepath.Dir(b.scriptPath), 0o755); err != nil {
		return errors.Wrap(err, "create script directory")
	}
	script := fmt.Sprintf("#!/bin/sh\ntouch %s\n", b.markerPath)
	if err := os.WriteFile(b.scriptPath, []byte(script), 0o755); err != nil {
		return errors.Wrap(err, "write trigger script")
	}
	return nil
}

// registerGnome writes the custom keybinding through gsettings: the
// keybinding list plus name, command and binding on the keybinding node.
// Failures fall back to manual instructions; settings tooling differs enough
// across GNOME versions that a hard error here would be wrong.
func (b *ShellBackend) registerGnome(combo Combo) {
	const schema = "org.gnome.settings-daemon.plugins.media-keys"
	entry := schema + ".custom-keybinding:" + gnomeKeybindingPath
	calls := [][]string{
		{"set", schema, "custom-keybindings", fmt.Sprintf("['%s']", gnomeKeybindingPath)},
		{"set", entry, "name", "'SwiftLingo Capture'"},
		{"set", entry, "command", fmt.Sprintf("'%s'", b.scriptPath)},
		{"set", entry, "binding", fmt.Sprintf("'%s'", combo.GSettingsBinding())},
	}
	for _, args := range calls {
		if err := b.run("gsettings", args...); err != nil {
			b.log.Warn().Err(err).Msg("gsettings registration failed")
			b.manualInstructions(combo)
			return
		}
	}
	b.log.Info().Str("binding", combo.GSettingsBinding()).Msg("gnome shortcut registered")
}

// registerKde writes the shortcut into kglobalshortcutsrc and pokes the
// shortcut daemon to reload. kquitapp5 exits kglobalaccel, which the session
// restarts with the new configuration.
func (b *ShellBackend) registerKde(combo Combo) {
	entry := fmt.Sprintf("%s,,SwiftLingo Capture", combo.KdeBinding())
	if err := b.run("kwriteconfig5",
		"--file", "kglobalshortcutsrc",
		"--group", "swiftlingo",
		"--key", "CaptureSelection",
		entry,
	); err != nil {
		b.log.Warn().Err(err).Msg("kwriteconfig5 registration failed")
		b.manualInstructions(combo)
		return
	}
	if err := b.run("kquitapp5", "kglobalaccel"); err != nil {
		b.log.Debug().Err(err).Msg("could not restart kglobalaccel")
	}
	b.log.Info().Str("binding", combo.KdeBinding()).Msg("kde shortcut registered")
}

func (b *ShellBackend) manualInstructions(combo Combo) {
	b.log.Warn().
		Str("script", b.scriptPath).
		Str("combo", combo.String()).
		Msg("bind the trigger script to the combo in your desktop's keyboard settings")
	if b.notify != nil {
		b.notify("Shortcut setup needed",
			fmt.Sprintf("Bind %s to %s in your desktop's keyboard settings.", b.scriptPath, combo))
	}
}

func (b *ShellBackend) Close() error { return nil }
