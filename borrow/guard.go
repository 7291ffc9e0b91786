package borrow

// Ref is an active immutable borrow. Its lifetime is the borrow's
// lifetime: the range stays registered in the Lock's ledger until
// Release. The slice behind Slice must not be written through while the
// Ref is alive.
type Ref[T any] struct {
	lk       *Lock
	data     []T
	r        byteRange
	released bool
}

// Slice returns the borrowed view. Valid until Release.
func (g *Ref[T]) Slice() []T { return g.data }

// Release deregisters the borrow. Idempotent. Must run within the Lock's
// scope, on the engine goroutine.
func (g *Ref[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	remove(&g.lk.ledger.shared, g.r)
	g.data = nil
}

// RefMut is an active mutable borrow: while it is alive, the ledger
// guarantees no other borrow overlaps its range.
type RefMut[T any] struct {
	lk       *Lock
	data     []T
	r        byteRange
	released bool
}

// Slice returns the borrowed view for reading and writing. Valid until
// Release.
func (g *RefMut[T]) Slice() []T { return g.data }

// Release deregisters the borrow. Idempotent. Must run within the Lock's
// scope, on the engine goroutine.
func (g *RefMut[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	remove(&g.lk.ledger.owned, g.r)
	g.data = nil
}
