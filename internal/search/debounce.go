package search

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period before a scheduled lookup runs.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer holds a single outstanding scheduled task. Scheduling a new task
// cancels the previous one, so only the final call after a quiet period
// actually runs. This models the suggestion lookup's cancel-and-replace
// semantics: at most one timer is live at a time.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending task with fn, to run after the quiet period.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending task, if any, without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending task and rejects all future schedules.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
