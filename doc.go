// Package jsruntime provides a safe bridge between multi-threaded Go code
// and an embedded single-threaded JavaScript engine (goja).
//
// Two problems dominate embedding a single-threaded, garbage-collected
// engine in a concurrent host, and this library exists to solve both:
//
//  1. Cross-thread dispatch: arbitrary goroutines need to schedule work
//     that must run on the one goroutine that owns the engine, and observe
//     the outcome.
//  2. Dynamic aliasing control: host code borrows raw byte views of
//     engine-owned storage, where two independently obtained handles may
//     reference overlapping memory the type system cannot see as aliased.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	jsruntime/       Root package with the Buffer interface
//	├── engine/      The engine goroutine, its task queue, and the
//	│                threadsafe call Primitive with keep-alive controls
//	├── dispatch/    Channel, Send/TrySend, and JoinHandle for scheduling
//	│                closures onto the engine goroutine
//	├── borrow/      The per-lock-scope ledger of active byte-range
//	│                borrows, with Ref/RefMut guards
//	├── buffer/      Borrowable adapters for goja ArrayBuffers and wasm
//	│                linear memory regions
//	└── errors/      Structured error types for diagnostics
//
// # Quick Start
//
// Start an engine, create a channel during setup, and dispatch work to it
// from any goroutine:
//
//	var ch *dispatch.Channel
//
//	eng, err := engine.Start(ctx, func(access *engine.Access) error {
//	    ch = dispatch.New(access)
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handle := dispatch.Send(ch, func(access *engine.Access) (int64, error) {
//	    v, err := access.Runtime().RunString("6 * 7")
//	    if err != nil {
//	        return 0, err
//	    }
//	    return v.ToInteger(), nil
//	})
//
//	answer, err := handle.Join()
//
// # Thread Safety
//
// Channel.Clone, Send, and TrySend are safe from any goroutine; they are
// the only operations that are. Everything that takes an *engine.Access
// (Channel.Reference, Channel.Unref, borrow locks, buffer views) must run
// on the engine goroutine, and possession of the access token is the
// proof. Access tokens are only ever constructed by the engine loop and
// handed to setup functions and dispatched closures.
//
// # Keep-Alive
//
// A referenced Channel prevents the engine loop from exiting. Unreference
// every channel (or Close them) and the loop drains its queue and returns
// on its own; engine.Close tears the loop down eagerly, delivering every
// undelivered task its shutdown sentinel so no JoinHandle is left hanging.
package jsruntime
