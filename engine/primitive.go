package engine

import "github.com/wippyai/js-runtime/errors"

// Trampoline receives callbacks delivered on the engine goroutine. access
// is nil exactly when the engine tore down with the callback still queued;
// that shutdown sentinel is delivered at most once per posted data.
type Trampoline func(access *Access, data any)

// Primitive is a threadsafe call gate bound to one engine. Call may be
// used from any goroutine; everything else requires an Access.
type Primitive struct {
	eng        *Engine
	trampoline Trampoline

	// Engine goroutine only.
	referenced bool
}

// NewPrimitive registers a new call gate with the engine. The primitive
// starts referenced: it keeps the engine loop alive until Unreference.
// Must be called on the engine goroutine.
func NewPrimitive(access *Access, fn Trampoline) *Primitive {
	e := access.eng
	e.refs++
	return &Primitive{
		eng:        e,
		trampoline: fn,
		referenced: true,
	}
}

// Call posts data for delivery to the trampoline on the engine goroutine.
// Delivery order follows submission order for all primitives of one
// engine. Call never blocks beyond the enqueue itself.
//
// Once the engine has shut down Call fails, and the data will never be
// delivered, not even as a sentinel. Data accepted by Call is delivered
// exactly once: with a live Access if the loop is still running, with the
// nil sentinel if it is tearing down.
func (p *Primitive) Call(data any) error {
	e := p.eng
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errors.Shutdown("post callback")
	}
	e.queue = append(e.queue, invocation{prim: p, data: data})
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

// Reference marks the primitive as keeping the engine loop alive.
// Idempotent. Must be called on the engine goroutine.
func (p *Primitive) Reference(access *Access) {
	if p.referenced {
		return
	}
	p.referenced = true
	p.eng.refs++
}

// Unreference allows the engine loop to exit while this primitive exists.
// Idempotent. Must be called on the engine goroutine.
func (p *Primitive) Unreference(access *Access) {
	if !p.referenced {
		return
	}
	p.referenced = false
	p.eng.refs--
}

// Referenced reports whether the primitive currently keeps the loop
// alive. Must be called on the engine goroutine.
func (p *Primitive) Referenced() bool { return p.referenced }
