// Package debounce holds a raw input value and a settled copy that only
// catches up after the input has been quiet for a fixed window.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period before a raw value settles
const DefaultWindow = 300 * time.Millisecond

// Value keeps two slots: Raw changes on every Set, Settled changes only after
// Window passes without another Set. The last timer wins.
type Value[T any] struct {
	mu       sync.Mutex
	window   time.Duration
	raw      T
	settled  T
	pending  bool
	gen      uint64
	timer    *time.Timer
	stopped  bool
	done     chan struct{}
	onSettle func(T)
}

// New creates a Value with the given window. onSettle, when non-nil, runs once
// per settled burst with the last value of the burst. It runs on the timer's
// goroutine, outside the lock.
func New[T any](window time.Duration, onSettle func(T)) *Value[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Value[T]{window: window, onSettle: onSettle, done: make(chan struct{})}
}

// Set records a new raw value and restarts the quiet window
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		return
	}
	v.raw = value
	v.pending = true
	v.gen++
	gen := v.gen

	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.window, func() { v.fire(gen) })
}

// fire settles the value unless a newer Set superseded this timer
func (v *Value[T]) fire(gen uint64) {
	v.mu.Lock()
	if v.stopped || !v.pending || gen != v.gen {
		v.mu.Unlock()
		return
	}
	value := v.settleLocked()
	cb := v.onSettle
	v.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

func (v *Value[T]) settleLocked() T {
	v.settled = v.raw
	v.pending = false
	v.timer = nil
	return v.settled
}

// Raw returns the latest input value
func (v *Value[T]) Raw() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// Settled returns the value that currently drives downstream evaluation
func (v *Value[T]) Settled() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}

// Pending reports whether a raw value is waiting to settle
func (v *Value[T]) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// Flush settles a pending value immediately. It reports whether anything was
// pending.
func (v *Value[T]) Flush() bool {
	v.mu.Lock()
	if v.stopped || !v.pending {
		v.mu.Unlock()
		return false
	}
	if v.timer != nil {
		v.timer.Stop()
	}
	v.gen++
	value := v.settleLocked()
	cb := v.onSettle
	v.mu.Unlock()

	if cb != nil {
		cb(value)
	}
	return true
}

// Done is closed by the first call to Stop
func (v *Value[T]) Done() <-chan struct{} {
	return v.done
}

// Stop drops any pending update. Later calls to Set are ignored.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.stopped {
		close(v.done)
	}
	v.stopped = true
	v.pending = false
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}
