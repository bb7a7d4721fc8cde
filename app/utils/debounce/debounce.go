// Package debounce delays a call until its caller has been quiet for a while.
package debounce

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Debouncer passes the argument of the last Call in a burst to fn.
type Debouncer[A any] struct {
	fn        func(A)
	debounced func(f func())

	mu      sync.Mutex
	gen     uint64
	pending bool
}

func New[A any](wait time.Duration, fn func(A)) *Debouncer[A] {
	return &Debouncer[A]{fn: fn, debounced: debounce.New(wait)}
}

// Call schedules fn(arg) after the quiet period, replacing any call that is
// still pending.
func (d *Debouncer[A]) Call(arg A) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.pending = true
	d.mu.Unlock()

	d.debounced(func() {
		d.mu.Lock()
		if gen != d.gen || !d.pending {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
		d.fn(arg)
	})
}

// Stop drops the pending call, if any. It reports whether one was dropped.
func (d *Debouncer[A]) Stop() bool {
	d.mu.Lock()
	dropped := d.pending
	d.pending = false
	d.gen++
	d.mu.Unlock()

	d.debounced(func() {})
	return dropped
}
