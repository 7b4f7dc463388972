package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// AppName is used for the config directory, notifications and the window
// title the activator searches for.
const AppName = "SwiftLingo"

// Config holds the user-editable settings. Missing fields keep their
// defaults, so an empty or absent file is valid.
type Config struct {
	// Hotkey is the global combination, e.g. "ctrl+alt+t".
	Hotkey string `json:"hotkey"`
	// Backend selects the X11 registrar: "auto", "native" (protocol-level
	// grab) or "legacy" (toolkit hotkey library).
	Backend string `json:"backend"`
	// WindowTitle is the exact title of the window to raise on trigger.
	WindowTitle string `json:"window_title"`

	Notifications    bool   `json:"notifications"`
	StartupMinimized bool   `json:"startup_minimized"`
	LogLevel         string `json:"log_level"`
}

func defaults() *Config {
	return &Config{
		Hotkey:        "ctrl+alt+t",
		Backend:       "auto",
		WindowTitle:   AppName,
		Notifications: true,
		LogLevel:      "info",
	}
}

// Dir returns the per-user configuration directory. The hotkey marker files
// and the shortcut trigger script live here too, so the path is shared state
// between this process and the desktop's shortcut daemon.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "swiftlingo")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "swiftlingo")
}

// Path returns the config file location.
func Path() string { return filepath.Join(Dir(), "config.json") }

// Load reads the config file, merging it over the defaults. A missing file
// returns the defaults; a malformed file is an error.
func Load() (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.Hotkey == "" {
		cfg.Hotkey = defaults().Hotkey
	}
	if cfg.WindowTitle == "" {
		cfg.WindowTitle = defaults().WindowTitle
	}
	if cfg.Backend == "" {
		cfg.Backend = "auto"
	}
	return cfg, nil
}

// Save writes the config back to disk, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(Path(), data, 0o644), "write config")
}
