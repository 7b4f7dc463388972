//go:build linux

package app

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
	"github.com/swiftlingo/swiftlingo/internal/trigger"
	"github.com/swiftlingo/swiftlingo/internal/wm"
)

type recordWindow struct {
	presented chan struct{}
}

func (w *recordWindow) Present() {
	select {
	case w.presented <- struct{}{}:
	default:
	}
}
func (w *recordWindow) Unminimize() {}
func (w *recordWindow) Minimize()   {}

type chanConsumer struct {
	texts chan string
}

func (c *chanConsumer) Consume(text string) { c.texts <- text }

func newTestPoller(t *testing.T) (*Poller, *trigger.Channel, *recordWindow, *chanConsumer) {
	t.Helper()
	ch, err := trigger.NewChannel(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	win := &recordWindow{presented: make(chan struct{}, 8)}
	consumer := &chanConsumer{texts: make(chan string)}
	// Wayland keeps the manager toolkit-only, no X connection in tests.
	p := NewPoller(ch, wm.New(display.Wayland, zerolog.Nop()), consumer, zerolog.Nop())
	p.AttachWindow(win, 0)
	return p, ch, win, consumer
}

func TestPollerDeliversSelectionAndRaisesWindow(t *testing.T) {
	p, ch, win, consumer := newTestPoller(t)
	if err := ch.Signal(trigger.KindSelection, "guten tag"); err != nil {
		t.Fatal(err)
	}

	p.Start()
	defer p.Stop()

	select {
	case text := <-consumer.texts:
		if text != "guten tag" {
			t.Errorf("consumed %q", text)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("selection never reached the consumer")
	}
	select {
	case <-win.presented:
	case <-time.After(3 * time.Second):
		t.Fatal("window was not raised for the selection")
	}
}

func TestPollerFocusRequestRaisesWindow(t *testing.T) {
	p, ch, win, _ := newTestPoller(t)
	if err := ch.Signal(trigger.KindFocus, ""); err != nil {
		t.Fatal(err)
	}

	p.Start()
	defer p.Stop()

	select {
	case <-win.presented:
	case <-time.After(3 * time.Second):
		t.Fatal("focus request did not raise the window")
	}
	if ch.Pending(trigger.KindFocus) {
		t.Error("focus marker not consumed")
	}
}

func TestPollerDeliversEachEventOnce(t *testing.T) {
	p, ch, _, consumer := newTestPoller(t)
	if err := ch.Signal(trigger.KindSelection, "once"); err != nil {
		t.Fatal(err)
	}

	p.Start()
	defer p.Stop()

	<-consumer.texts
	select {
	case text := <-consumer.texts:
		t.Errorf("event delivered twice: %q", text)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestPollerIgnoresMarkersFromPreviousRun(t *testing.T) {
	ch, err := trigger.NewChannel(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	// Markers written before the poller exists look like leftovers from a
	// crashed run and must not be replayed.
	if err := ch.Signal(trigger.KindSelection, "stale"); err != nil {
		t.Fatal(err)
	}
	if err := ch.Signal(trigger.KindFocus, ""); err != nil {
		t.Fatal(err)
	}

	win := &recordWindow{presented: make(chan struct{}, 8)}
	consumer := &chanConsumer{texts: make(chan string, 1)}
	p := NewPoller(ch, wm.New(display.Wayland, zerolog.Nop()), consumer, zerolog.Nop())
	p.AttachWindow(win, 0)
	p.Start()
	defer p.Stop()

	select {
	case text := <-consumer.texts:
		t.Errorf("stale selection %q replayed at startup", text)
	case <-win.presented:
		t.Error("stale focus marker raised the window at startup")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestPollerStopWaitsForLoopExit(t *testing.T) {
	p, _, _, _ := newTestPoller(t)
	p.Start()

	p.Stop()

	select {
	case <-p.done:
	default:
		t.Fatal("Stop returned before the loop exited")
	}
	p.Stop() // second Stop must not block or panic
}

func TestPollerStopWithoutStart(t *testing.T) {
	p, _, _, _ := newTestPoller(t)
	p.Stop()
}

func TestPollerSlowConsumerDoesNotBlockFocus(t *testing.T) {
	p, ch, win, _ := newTestPoller(t)
	// The consumer channel is unbuffered and nobody reads it, so Consume
	// blocks forever on its own goroutine.
	if err := ch.Signal(trigger.KindSelection, "stuck"); err != nil {
		t.Fatal(err)
	}

	p.Start()
	defer p.Stop()

	<-win.presented // selection event raised the window despite the consumer

	if err := ch.Signal(trigger.KindFocus, ""); err != nil {
		t.Fatal(err)
	}
	select {
	case <-win.presented:
	case <-time.After(3 * time.Second):
		t.Fatal("focus handling stalled behind a slow consumer")
	}
}
