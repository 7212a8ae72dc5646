package document

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period after the last content change
// before a debounced save fires.
const DefaultAutosaveDelay = 500 * time.Millisecond

// debouncer coalesces bursts of notifications into one deferred call to fn.
//
// Each Notify cancels and reschedules the pending timer, so fn runs one delay
// after the last notification, not the first. Cancel discards the pending run
// entirely; a later Notify arms it again.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) Notify() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.delay)
	d.mu.Unlock()
}

// Cancel discards any pending run. It does not wait for a run that is already
// in flight.
func (d *debouncer) Cancel() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}

func (d *debouncer) onTimer() {
	d.mu.Lock()
	if d.running {
		// Another run is in flight; come back for the pending changes.
		if d.timer != nil {
			d.timer.Reset(d.delay)
		}
		d.mu.Unlock()
		return
	}
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.running = true
	d.mu.Unlock()

	d.fn()

	d.mu.Lock()
	d.running = false
	// If another Notify happened while running, schedule another run.
	if d.pending && d.timer != nil {
		d.timer.Reset(d.delay)
	}
	d.mu.Unlock()
}
