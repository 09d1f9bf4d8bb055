package kernel

import "sync/atomic"

// Flag is the shared over-limit flag observed by all workers of a sweep:
// reset to false before the first write of each sweep, monotonically set
// to true by any worker that computes a change exceeding epsilon. A
// release/acquire pair across the post-sweep barrier is sufficient; the
// kernel never reads it, only sets it.
type Flag struct {
	set atomic.Bool
}

// Clear resets the flag to false before a sweep begins.
func (f *Flag) Clear() {
	f.set.Store(false)
}

// Raise monotonically promotes the flag to true.
func (f *Flag) Raise() {
	f.set.Store(true)
}

// IsSet reports the flag's value, intended to be read only after all of
// a sweep's workers have completed (i.e., after a barrier).
func (f *Flag) IsSet() bool {
	return f.set.Load()
}
