//go:build linux

package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/trigger"
	"github.com/swiftlingo/swiftlingo/internal/wm"
)

// pollInterval paces the UI loop's marker-file checks.
const pollInterval = 100 * time.Millisecond

// Consumer receives captured selection text. Consume runs on its own
// goroutine per event; a slow consumer never stalls the UI loop.
type Consumer interface {
	Consume(text string)
}

// Poller is the UI loop: one goroutine that reacts to marker-file events by
// raising the window and handing captured text to the consumer. It is the
// only owner of window state, so none of it needs locking.
type Poller struct {
	channel  *trigger.Channel
	windows  *wm.Manager
	consumer Consumer
	log      zerolog.Logger

	win    wm.Window
	handle wm.Handle

	lastFocus     time.Time
	lastSelection time.Time

	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewPoller(ch *trigger.Channel, windows *wm.Manager, consumer Consumer, log zerolog.Logger) *Poller {
	// Last-seen times start at construction time, so markers left behind by
	// a crashed previous run are not replayed at startup.
	now := time.Now()
	return &Poller{
		channel:       ch,
		windows:       windows,
		consumer:      consumer,
		log:           log,
		lastFocus:     now,
		lastSelection: now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// AttachWindow hands the poller the toolkit window and its protocol handle.
// Call before Start; either may be zero when unknown.
func (p *Poller) AttachWindow(win wm.Window, handle wm.Handle) {
	p.win = win
	p.handle = handle
}

// Start launches the loop.
func (p *Poller) Start() {
	p.started = true
	go p.loop()
}

func (p *Poller) loop() {
	defer close(p.done)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick consumes at most one event per kind. Focus requests are checked first
// so the window is already rising while the consumer starts on the text.
func (p *Poller) tick() {
	if _, mtime, ok := p.channel.Poll(trigger.KindFocus, p.lastFocus); ok {
		p.lastFocus = mtime
		p.windows.Focus(p.win, p.handle)
	}
	if text, mtime, ok := p.channel.Poll(trigger.KindSelection, p.lastSelection); ok {
		p.lastSelection = mtime
		p.log.Debug().Int("chars", len(text)).Msg("selection handed to consumer")
		if p.consumer != nil {
			go p.consumer.Consume(text)
		}
		p.windows.Focus(p.win, p.handle)
	}
}

// Stop halts the loop and waits for an in-flight tick to finish, so callers
// can tear down the window manager without racing a final Focus call. Safe
// to call twice.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if p.started {
		<-p.done
	}
}
