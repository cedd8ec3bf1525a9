// Package debounce suppresses rapidly changing values until they have been
// stable for a configured interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer tracks a continuously updated value and promotes it to the
// settled value once no further update has arrived for the full delay. Every
// intermediate value observed during an active settling window is dropped.
type Debouncer[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	settled  T
	gen      uint64
	stopped  bool
	onSettle func(T)
}

// New returns a Debouncer whose settled value starts at initial. The optional
// onSettle callback fires once per settled value; it runs on the timer
// goroutine and must not block.
func New[T any](initial T, delay time.Duration, onSettle func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		delay:    delay,
		settled:  initial,
		onSettle: onSettle,
	}
}

// Set feeds a new value and restarts the settling window: the value settles
// only if no further Set arrives within the configured delay. A zero delay
// propagates immediately.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay == 0 {
		d.settled = value
		cb := d.onSettle
		d.mu.Unlock()
		if cb != nil {
			cb(value)
		}
		return
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.settle(gen, value)
	})
	d.mu.Unlock()
}

func (d *Debouncer[T]) settle(gen uint64, value T) {
	d.mu.Lock()
	// A Set or Stop issued after this timer was armed invalidates it.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.settled = value
	d.timer = nil
	cb := d.onSettle
	d.mu.Unlock()
	if cb != nil {
		cb(value)
	}
}

// Cancel discards any pending value without settling it. The settled value is
// untouched and later Sets behave normally.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Value returns the most recently settled value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Stop cancels any pending settle and discards all later Sets. Use it when
// the owning component is torn down so the timer never fires into discarded
// state.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
