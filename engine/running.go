package engine

import "sync/atomic"

// running is the last word on whether new dispatches are meaningful. It
// is set when the first engine starts and cleared by the shutdown
// sentinel path.
var running atomic.Bool

// Running reports whether an engine has started and not yet torn down.
// Primitive.Call remains the authoritative check for an individual
// engine; Running is process-wide advisory state.
func Running() bool { return running.Load() }

func markRunning() { running.Store(true) }

// markStopped clears the flag exactly once per true→false transition.
func markStopped() { running.CompareAndSwap(true, false) }
