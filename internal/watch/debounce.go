package watch

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer drops triggers that arrive within window of the last accepted
// one. Dropped triggers are not queued. Not safe for concurrent use; the
// watch loop is its only caller.
type Debouncer struct {
	clock    clockwork.Clock
	window   time.Duration
	last     time.Time
	accepted bool
}

// NewDebouncer creates a debouncer. A nil clock means the real clock.
func NewDebouncer(window time.Duration, clock clockwork.Clock) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, window: window}
}

// Accept reports whether a trigger arriving now should run. The first trigger
// is always accepted.
func (d *Debouncer) Accept() bool {
	now := d.clock.Now()
	if d.accepted && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	d.accepted = true
	return true
}

// Window returns the configured debounce window.
func (d *Debouncer) Window() time.Duration { return d.window }
