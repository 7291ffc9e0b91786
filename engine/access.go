package engine

import "github.com/dop251/goja"

// Access is the capability proving the holder is running on the engine
// goroutine. It is constructed only by the engine loop and handed to the
// Start setup function and to delivered callbacks.
//
// An Access must not be retained past the call it was handed to, and must
// never be passed to another goroutine. Code that captures values on one
// goroutine and needs engine access later should capture the values in a
// dispatched closure instead; the closure receives its own Access when it
// runs.
type Access struct {
	eng *Engine
}

// Runtime returns the engine's goja runtime. Only valid for the duration
// of the call that received this Access.
func (a *Access) Runtime() *goja.Runtime { return a.eng.vm }

// Engine returns the engine this token belongs to.
func (a *Access) Engine() *Engine { return a.eng }

// KeepAlive reports the engine's current keep-alive reference count: the
// number of referenced primitives. The loop exits once this reaches zero
// and the queue is drained.
func (a *Access) KeepAlive() int { return a.eng.refs }
