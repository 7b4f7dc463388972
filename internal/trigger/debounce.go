package trigger

import (
	"sync/atomic"
	"time"
)

// Guard collapses detections that arrive within one interval of an accepted
// trigger into a single event. The X11 grab, the marker-file poll and a
// desktop-registered shortcut can all report the same physical key press;
// whichever path reaches the guard first wins and the rest are discarded.
//
// The guard is a single atomic timestamp and nothing else. The load/store
// pair is deliberately not a compare-and-swap: a stale read can at worst let
// one extra trigger through within one interval, which is harmless, and this
// is the only cross-thread mutable state on the detection side.
type Guard struct {
	interval time.Duration
	last     atomic.Int64 // unix milliseconds of the last accepted trigger
}

// NewGuard returns a guard with the given suppression interval.
func NewGuard(interval time.Duration) *Guard {
	return &Guard{interval: interval}
}

// Accept reports whether a trigger observed at now should be acted on, and
// records it if so.
func (g *Guard) Accept(now time.Time) bool {
	ms := now.UnixMilli()
	if ms-g.last.Load() < g.interval.Milliseconds() {
		return false
	}
	g.last.Store(ms)
	return true
}
