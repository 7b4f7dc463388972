//go:build linux

package hotkey

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
	"github.com/swiftlingo/swiftlingo/internal/trigger"
)

// Capturer returns the current primary selection, or "" when there is none.
type Capturer interface {
	Capture() string
}

const (
	// debounceInterval collapses duplicate detections of one physical press.
	debounceInterval = time.Second

	// pollInterval paces the marker-file fallback watcher.
	pollInterval = 100 * time.Millisecond

	// TriggerScript is the script name shell shortcuts are bound to.
	TriggerScript = "trigger.sh"
)

// Options selects how the Service registers the shortcut.
type Options struct {
	Combo  Combo
	Server display.Server
	Shell  display.Shell

	// Backend forces a registration mechanism: "native", "legacy", or
	// "auto" (the default) which tries native first.
	Backend string

	// Notify surfaces operator-facing notices (manual setup instructions).
	// May be nil.
	Notify func(title, message string)
}

// Service owns the detection side of the pipeline. It registers whatever
// backend the display server allows, and regardless of the outcome polls the
// hotkey marker file, so a press is detected even when every registration
// failed and something else touches the marker.
type Service struct {
	opts    Options
	log     zerolog.Logger
	channel *trigger.Channel
	guard   *trigger.Guard
	reader  Capturer

	mu       sync.Mutex // guards backend and isPaused
	backend  Backend
	isPaused bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewService wires a Service; Start activates it.
func NewService(opts Options, ch *trigger.Channel, reader Capturer, log zerolog.Logger) *Service {
	return &Service{
		opts:    opts,
		log:     log,
		channel: ch,
		guard:   trigger.NewGuard(debounceInterval),
		reader:  reader,
		stop:    make(chan struct{}),
	}
}

// Start launches the marker-file watcher, then registers the shortcut in the
// background. Registration may block for a long time (the portal shows a
// consent dialog), so it must never delay the watcher or the caller. Start
// never fails: every registration failure degrades to the watcher, which
// always runs.
func (s *Service) Start() {
	go s.watch()
	go s.register()
}

func (s *Service) register() {
	switch s.opts.Server {
	case display.X11:
		s.startX11()
	case display.Wayland:
		s.startWayland()
	default:
		s.log.Warn().Msg("unknown display server, hotkey detection limited to the marker file")
	}
}

// startX11 tries the configured backend, then the other one. X11 grabs fail
// when any other client already holds the chord, so a second mechanism is
// worth the attempt before settling for the marker watcher alone.
func (s *Service) startX11() {
	var order []Backend
	if s.opts.Backend == "legacy" {
		order = []Backend{NewLegacyBackend(s.log), NewX11Backend(s.log)}
	} else {
		order = []Backend{NewX11Backend(s.log), NewLegacyBackend(s.log)}
	}
	for _, b := range order {
		if !b.Available() {
			continue
		}
		if err := b.Register(s.opts.Combo, s.Trigger); err != nil {
			s.log.Warn().Str("backend", b.Name()).Err(err).Msg("hotkey registration failed")
			continue
		}
		s.setBackend(b)
		return
	}
	s.log.Warn().Msg("no X11 hotkey backend could register, relying on the marker file")
}

// startWayland prefers the portal, which delivers presses in-process. When
// the portal is missing or refuses, the shell backend binds the trigger
// script as a desktop shortcut and delivery moves to the marker file.
func (s *Service) startWayland() {
	portal := NewPortalBackend(s.log)
	if portal.Available() {
		err := portal.Register(s.opts.Combo, s.Trigger)
		if err == nil {
			s.setBackend(portal)
			return
		}
		s.log.Debug().Err(err).Msg("portal registration failed, falling back to shell shortcut")
	}

	shell := NewShellBackend(s.opts.Shell, s.channel.Path(TriggerScript),
		s.channel.Path(trigger.KindHotkey), s.opts.Notify, s.log)
	if err := shell.Register(s.opts.Combo, nil); err != nil {
		s.log.Warn().Err(err).Msg("shell shortcut registration failed")
		return
	}
	s.setBackend(shell)
}

func (s *Service) setBackend(b Backend) {
	s.mu.Lock()
	s.backend = b
	s.mu.Unlock()
}

// watch polls the hotkey marker. This runs under every backend: it is the
// delivery path for shell shortcuts and the safety net for everything else.
func (s *Service) watch() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.channel.Pending(trigger.KindHotkey) {
				s.Trigger()
			}
		}
	}
}

// Trigger runs the accepted-press path: consume the marker, debounce,
// capture the selection, signal the UI loop. Safe to call from any backend
// goroutine; the guard is the only shared state.
func (s *Service) Trigger() {
	// Remove the marker first so a suppressed duplicate cannot re-fire on
	// the next poll tick.
	s.channel.Clear(trigger.KindHotkey)

	if s.Paused() {
		s.log.Debug().Msg("hotkey paused, trigger ignored")
		return
	}
	if !s.guard.Accept(time.Now()) {
		s.log.Debug().Msg("trigger inside debounce window, ignored")
		return
	}

	s.log.Info().Msg("hotkey trigger accepted")
	if text := s.reader.Capture(); text != "" {
		if err := s.channel.Signal(trigger.KindSelection, text); err != nil {
			s.log.Warn().Err(err).Msg("could not store captured selection")
		}
	}
	if err := s.channel.Signal(trigger.KindFocus, ""); err != nil {
		s.log.Warn().Err(err).Msg("could not request window focus")
	}
}

// SetPaused toggles trigger handling without unregistering the shortcut.
func (s *Service) SetPaused(paused bool) {
	s.mu.Lock()
	s.isPaused = paused
	s.mu.Unlock()
	s.log.Info().Bool("paused", paused).Msg("hotkey pause state changed")
}

func (s *Service) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPaused
}

// BackendName reports the active registration mechanism, or "" when none has
// registered (yet); registration runs in the background after Start.
func (s *Service) BackendName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// Stop halts the watcher and releases the backend.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	b := s.backend
	s.backend = nil
	s.mu.Unlock()
	if b != nil {
		if err := b.Close(); err != nil {
			s.log.Debug().Err(err).Msg("backend close")
		}
	}
}
