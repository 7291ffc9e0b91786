// Package engine runs an embedded goja JavaScript runtime on a single
// dedicated goroutine and provides the threadsafe call gate used to reach
// it from everywhere else.
//
// # The Engine Goroutine
//
// goja runtimes are not safe for concurrent use. Start spawns one
// goroutine, locks it to its OS thread, constructs the runtime there, and
// never lets the runtime be touched from anywhere else. The *Access token
// is the capability that proves code is running on that goroutine: it is
// constructed only by the loop and handed to the setup function and to
// every delivered callback.
//
// # Primitives
//
// A Primitive is a call gate bound to one engine:
//
//	prim := engine.NewPrimitive(access, trampoline)
//	err := prim.Call(data) // any goroutine
//
// Call enqueues data for delivery to the trampoline on the engine
// goroutine, in submission order. It fails only once the engine has shut
// down. The trampoline receives a nil *Access exactly when the engine
// tears down with the callback still undelivered; this shutdown sentinel
// is the only way a posted callback can observe engine death.
//
// # Keep-Alive
//
// Each Primitive carries a referenced flag (it starts referenced). While
// any primitive of an engine is referenced, the loop considers itself
// kept alive; when the count drops to zero and the queue drains, the loop
// exits on its own. Reference and Unreference require an *Access because
// they may only run on the engine goroutine.
//
// # Lifecycle
//
// The loop exits when the keep-alive count reaches zero, when the Start
// context is canceled, or when Close is called. All three paths converge:
// the engine stops accepting new calls, every still-queued callback is
// delivered its shutdown sentinel, and Done is closed. The process-wide
// Running flag is set when the first engine starts and cleared by the
// sentinel delivery path.
package engine
