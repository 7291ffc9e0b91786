package dispatch

import (
	"sync/atomic"

	"github.com/wippyai/js-runtime/engine"
)

// channelState is the shared half of a Channel: the call gate plus the
// count of handles currently holding a keep-alive reference.
type channelState struct {
	prim *engine.Primitive

	// refCount equals the number of live Channel handles whose hasRef is
	// true. The primitive is referenced iff refCount > 0. Increments can
	// race with decrements, but 0↔1 flips happen only on the engine
	// goroutine, so plain atomics suffice.
	refCount atomic.Int64
}

// reference moves the shared count up and references the primitive on
// the 0→1 transition. Engine goroutine only.
func (s *channelState) reference(access *engine.Access) {
	if s.refCount.Add(1) != 1 {
		return
	}
	s.prim.Reference(access)
}

// unref moves the shared count down and unreferences the primitive on
// the transition to 0. Engine goroutine only.
func (s *channelState) unref(access *engine.Access) {
	if s.refCount.Add(-1) != 0 {
		return
	}
	s.prim.Unreference(access)
}

// trampoline delivers one posted task. A nil access is the engine's
// shutdown sentinel: the task is abandoned, never run, and its observer
// resolves as panicked.
func (s *channelState) trampoline(access *engine.Access, data any) {
	t := data.(task)
	if access == nil {
		t.abandon()
		return
	}
	t.run(access)
}

// Channel schedules closures to execute on the engine goroutine that
// created it. Cloned Channels share one backing queue; tasks posted
// through the same state are delivered in submission order.
//
// The handle itself (Close, Reference, Unref) is owned by one goroutine
// at a time; Send, TrySend, and Clone may be used from any goroutine.
type Channel struct {
	state  *channelState
	hasRef bool
	closed bool
}

// New creates a Channel for scheduling closures on the engine goroutine.
// Must be called on the engine goroutine; the new Channel starts
// referenced, keeping the engine loop alive until it is unreferenced or
// closed.
func New(access *engine.Access) *Channel {
	s := &channelState{}
	s.prim = engine.NewPrimitive(access, s.trampoline)
	s.refCount.Store(1)
	return &Channel{state: s, hasRef: true}
}

// Clone returns a new handle sharing this Channel's backing queue. A
// clone of a referenced Channel is referenced; a clone of an
// unreferenced one shares state without touching the count.
func (c *Channel) Clone() *Channel {
	c.ensureOpen()
	if !c.hasRef {
		return &Channel{state: c.state}
	}
	// The primitive is already referenced; only the count moves, and no
	// engine access is needed.
	c.state.refCount.Add(1)
	return &Channel{state: c.state, hasRef: true}
}

// Reference makes this handle keep the engine loop alive. Idempotent.
// Engine goroutine only.
func (c *Channel) Reference(access *engine.Access) {
	c.ensureOpen()
	if c.hasRef {
		return
	}
	c.hasRef = true
	c.state.reference(access)
}

// Unref lets the engine loop exit while this handle exists. Idempotent.
// Engine goroutine only.
func (c *Channel) Unref(access *engine.Access) {
	c.ensureOpen()
	if !c.hasRef {
		return
	}
	c.hasRef = false
	c.state.unref(access)
}

// HasRef reports whether this handle currently keeps the engine loop
// alive.
func (c *Channel) HasRef() bool { return c.hasRef }

// Close releases the handle. If it held a keep-alive reference, giving
// that reference back must happen on the engine goroutine, so Close
// posts the unreference as a task of its own.
//
// The post is best effort: when the engine is already shutting down the
// submission fails and is ignored, leaving the shared count permanently
// above zero. At that point the loop is exiting anyway, so the stuck
// count has no observable effect beyond introspection.
func (c *Channel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if !c.hasRef {
		return
	}
	c.hasRef = false

	s := c.state
	_ = s.prim.Call(funcTask(func(access *engine.Access) {
		s.unref(access)
	}))
}

func (c *Channel) ensureOpen() {
	if c.closed {
		panic("dispatch: use of closed Channel")
	}
}
