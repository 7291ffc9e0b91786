// Package borrow dynamically enforces aliasing rules over engine-owned
// memory.
//
// Host code can hold several independently obtained views of the same
// underlying bytes: two ArrayBuffers over one allocation, a typed view
// and its parent buffer, a wasm memory region and a subrange of it. The
// Go type system cannot see those views as aliased, so exclusive access
// cannot be proven statically. This package proves it dynamically
// instead: a Lock carries a ledger of the byte ranges currently borrowed,
// keyed by memory address rather than by handle identity, and refuses any
// mutable borrow that would overlap an existing borrow.
//
//	lk := borrow.NewLock(access)
//
//	a, err := borrow.TryBorrowMut(lk, data[0:4])  // ok
//	b, err := borrow.TryBorrowMut(lk, data[4:8])  // ok, disjoint
//	_, err = borrow.TryBorrowMut(lk, data[3:5])   // BorrowError, overlaps both
//	a.Release()
//	c, err := borrow.TryBorrowMut(lk, data[3:5])  // still conflicts with b
//
// Immutable borrows may overlap each other freely; a mutable borrow
// conflicts with everything it overlaps. Checks are immediate; there is
// no queueing or blocking, first to arrive wins.
//
// A Lock exists within one exclusive-access window on the engine
// goroutine (creation requires an *engine.Access) and is never shared
// across goroutines, so no synchronization is involved. Guards must be
// released before the window ends and must not outlive their Lock.
package borrow
