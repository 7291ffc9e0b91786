// Package dispatch schedules closures from arbitrary goroutines onto the
// engine goroutine and hands their results back.
//
// # Channels
//
// A Channel wraps an engine.Primitive with reference counting and a typed
// request/response protocol. Create one on the engine goroutine (from a
// Start setup function or inside a dispatched closure), then share it:
//
//	ch := dispatch.New(access)
//
//	go func() {
//	    handle := dispatch.Send(ch, func(access *engine.Access) (string, error) {
//	        v, err := access.Runtime().RunString(`"hello".toUpperCase()`)
//	        if err != nil {
//	            return "", err
//	        }
//	        return v.String(), nil
//	    })
//	    s, err := handle.Join()
//	    ...
//	}()
//
// Send and TrySend are free functions rather than methods because the
// result type is generic.
//
// # Outcomes
//
// Every accepted task resolves its JoinHandle in exactly one of three
// ways: the closure's value, JoinError with KindPanicked (the closure
// panicked, or the engine shut down before delivering the task), or
// JoinError with KindScriptException (the closure completed by returning
// an error, conventionally a thrown JS exception). The two KindPanicked
// root causes are deliberately not distinguished: in both, no well-formed
// answer will ever arrive.
//
// # Keep-Alive and Cloning
//
// A referenced Channel keeps the engine loop alive. Clones of a
// referenced Channel are themselves referenced and share the backing
// queue; Reference and Unref are idempotent per handle and only move the
// shared count on a real flip. Close gives the handle's reference back;
// because that may only happen on the engine goroutine, Close posts the
// unreference as a task of its own, best effort.
//
// # Concurrency
//
// Send, TrySend, and Clone are safe from any goroutine. Reference, Unref,
// and the shared-count flips they cause run only on the engine goroutine.
// A JoinHandle has a single consumer: Join and JoinContext observe the
// same one-shot channel and may not be combined or repeated.
package dispatch
