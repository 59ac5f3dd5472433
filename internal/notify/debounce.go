package notify

import (
	"sync"
	"time"
)

// Debouncer collapses rapid repeated calls into a single trailing
// invocation carrying the arguments of the last call. Each Call resets
// the quiet-interval timer; the wrapped function runs once the interval
// elapses with no further calls.
type Debouncer struct {
	wait time.Duration
	fn   func(args ...any)

	mu    sync.Mutex
	timer *time.Timer
	args  []any
	gen   uint64
}

// NewDebouncer wraps fn with a quiet interval of wait.
func NewDebouncer(wait time.Duration, fn func(args ...any)) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Call schedules a trailing invocation, replacing the arguments of any
// previously pending one.
func (d *Debouncer) Call(args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.args = args
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Cancel drops any pending invocation and releases the timer. The
// debouncer remains usable afterwards.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.args = nil
}

// fire runs the trailing invocation. The generation check discards
// timers that lost a race with a later Call or Cancel: Stop reports
// false once the timer function has started, so a stale timer can still
// reach here after the state it captured is gone.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	args := d.args
	d.args = nil
	d.timer = nil
	d.mu.Unlock()

	d.fn(args...)
}
