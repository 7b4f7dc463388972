//go:build linux

package ui

import (
	"fmt"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
)

// Callbacks connect tray menu actions to the application.
type Callbacks struct {
	OnCapture     func()
	OnPauseToggle func(paused bool)
	OnOpenConfig  func()
	OnQuit        func()
}

// SystrayManager runs the tray icon and its menu. systray takes over the
// calling goroutine in Run; everything the menu does happens through the
// callbacks.
type SystrayManager struct {
	version string
	backend string
	icon    []byte
	cb      Callbacks
	log     zerolog.Logger

	paused  bool
	miPause *systray.MenuItem
}

// NewSystrayManager creates the tray manager. backend names the active
// hotkey mechanism and may be empty.
func NewSystrayManager(version, backend string, icon []byte, cb Callbacks, log zerolog.Logger) *SystrayManager {
	return &SystrayManager{
		version: version,
		backend: backend,
		icon:    icon,
		cb:      cb,
		log:     log,
	}
}

// Run blocks until Quit is chosen from the menu.
func (s *SystrayManager) Run() {
	systray.Run(s.onReady, s.onExit)
}

func (s *SystrayManager) onReady() {
	title := fmt.Sprintf("SwiftLingo %s", s.version)
	systray.SetTitle(title)
	systray.SetTooltip(title)
	if len(s.icon) > 0 {
		systray.SetIcon(s.icon)
	} else {
		s.log.Warn().Msg("no embedded icon for the tray")
	}

	miVersion := systray.AddMenuItem(title, "")
	miVersion.Disable()
	if s.backend != "" {
		miBackend := systray.AddMenuItem(fmt.Sprintf("Hotkey: %s", s.backend), "Active hotkey mechanism")
		miBackend.Disable()
	}
	systray.AddSeparator()

	miCapture := systray.AddMenuItem("Capture Selection", "Capture the current selection now")
	s.miPause = systray.AddMenuItem("Pause Hotkey", "Temporarily ignore the global hotkey")
	systray.AddSeparator()
	miConfig := systray.AddMenuItem("Open Config", "Open the configuration file")
	miQuit := systray.AddMenuItem("Quit", "Exit SwiftLingo")

	go func() {
		for {
			select {
			case <-miCapture.ClickedCh:
				if s.cb.OnCapture != nil {
					s.cb.OnCapture()
				}
			case <-s.miPause.ClickedCh:
				s.togglePause()
			case <-miConfig.ClickedCh:
				if s.cb.OnOpenConfig != nil {
					s.cb.OnOpenConfig()
				}
			case <-miQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (s *SystrayManager) togglePause() {
	s.paused = !s.paused
	if s.paused {
		s.miPause.SetTitle("Resume Hotkey")
	} else {
		s.miPause.SetTitle("Pause Hotkey")
	}
	if s.cb.OnPauseToggle != nil {
		s.cb.OnPauseToggle(s.paused)
	}
}

func (s *SystrayManager) onExit() {
	if s.cb.OnQuit != nil {
		s.cb.OnQuit()
	}
}
