//go:build linux

// Package app wires the capture pipeline together: display detection,
// hotkey registration, selection capture, the marker-file channel, window
// activation and the tray UI.
package app

import (
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/config"
	"github.com/swiftlingo/swiftlingo/internal/display"
	"github.com/swiftlingo/swiftlingo/internal/hotkey"
	"github.com/swiftlingo/swiftlingo/internal/logging"
	"github.com/swiftlingo/swiftlingo/internal/resources"
	"github.com/swiftlingo/swiftlingo/internal/selection"
	"github.com/swiftlingo/swiftlingo/internal/trigger"
	"github.com/swiftlingo/swiftlingo/internal/ui"
	"github.com/swiftlingo/swiftlingo/internal/wm"
)

// Application owns every long-lived component. Construct with New, then Run,
// which blocks in the tray loop until the user quits.
type Application struct {
	version string
	cfg     *config.Config
	log     zerolog.Logger

	server display.Server
	shell  display.Shell

	channel *trigger.Channel
	service *hotkey.Service
	windows *wm.Manager
	poller  *Poller
	notes   *ui.NotificationManager
	tray    *ui.SystrayManager
}

// New loads configuration, detects the display environment and builds the
// pipeline. consumer receives captured text and may be nil.
func New(version string, consumer Consumer) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	log := logging.New(cfg.LogLevel)

	server := display.Detect()
	shell := display.DetectShell()
	log.Info().
		Stringer("server", server).
		Stringer("shell", shell).
		Msg("display environment detected")

	ch, err := trigger.NewChannel(config.Dir(), log)
	if err != nil {
		return nil, err
	}

	combo, err := hotkey.ParseCombo(cfg.Hotkey)
	if err != nil {
		log.Warn().Err(err).Str("hotkey", cfg.Hotkey).Msg("invalid hotkey in config, using ctrl+alt+t")
		combo, _ = hotkey.ParseCombo("ctrl+alt+t")
	}

	notes := ui.NewNotificationManager(cfg.Notifications, log)
	reader := selection.NewReader(server, log)
	service := hotkey.NewService(hotkey.Options{
		Combo:   combo,
		Server:  server,
		Shell:   shell,
		Backend: cfg.Backend,
		Notify:  notes.Show,
	}, ch, reader, log)

	windows := wm.New(server, log)

	a := &Application{
		version: version,
		cfg:     cfg,
		log:     log,
		server:  server,
		shell:   shell,
		channel: ch,
		service: service,
		windows: windows,
		poller:  NewPoller(ch, windows, consumer, log),
		notes:   notes,
	}
	return a, nil
}

// AttachWindow connects the embedding application's main window: sticky and
// kept above on X11, minimized at startup when configured. Call before Run.
func (a *Application) AttachWindow(win wm.Window, handle wm.Handle) {
	a.windows.Setup(win, handle)
	if a.cfg.StartupMinimized {
		a.windows.Minimize(win)
	}
	a.poller.AttachWindow(win, handle)
}

// Run starts the detection and UI loops, then blocks in the tray until the
// user quits.
func (a *Application) Run() {
	a.service.Start()

	// Without an attached window, activation can still target a window found
	// by its configured title.
	if a.poller.win == nil && a.poller.handle == 0 && a.cfg.WindowTitle != "" {
		if h := a.windows.Locate(a.cfg.WindowTitle); h != 0 {
			a.log.Info().Str("title", a.cfg.WindowTitle).Uint32("window", uint32(h)).Msg("activation target located")
			a.windows.Setup(nil, h)
			a.poller.AttachWindow(nil, h)
		}
	}
	a.poller.Start()

	icon, err := resources.Icon()
	if err != nil {
		a.log.Warn().Err(err).Msg("tray icon unavailable")
	}
	a.tray = ui.NewSystrayManager(a.version, a.service.BackendName(), icon, ui.Callbacks{
		OnCapture:     a.service.Trigger,
		OnPauseToggle: a.service.SetPaused,
		OnOpenConfig:  a.openConfig,
		OnQuit:        a.shutdown,
	}, a.log)
	a.tray.Run()
}

// Notify shows a desktop notification, honoring the user's setting.
func (a *Application) Notify(title, message string) {
	a.notes.Show(title, message)
}

func (a *Application) openConfig() {
	if err := exec.Command("xdg-open", config.Path()).Start(); err != nil {
		a.log.Warn().Err(err).Msg("could not open config file")
	}
}

func (a *Application) shutdown() {
	a.log.Info().Msg("shutting down")
	a.service.Stop()
	a.poller.Stop()
	a.windows.Close()
}
