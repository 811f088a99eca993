// Package debounce coalesces bursts of triggers into a single callback.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs its callback once the trigger stream has been quiet for the
// configured delay. Each Trigger resets the timer; only the last burst's
// callback fires. A zero delay fires synchronously.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

// New creates a debouncer with the given quiet-period delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, replacing any previously
// scheduled callback.
func (d *Debouncer) Trigger(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Flush runs any pending callback immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.fn
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
