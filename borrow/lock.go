package borrow

import "github.com/wippyai/js-runtime/engine"

// Lock scopes a ledger of active borrows to one exclusive-access window
// on the engine goroutine. While host code holds borrows from a Lock, no
// script may run; obtain the Lock inside a dispatched closure and let
// every guard go before the closure returns.
//
// A Lock is not safe for concurrent use and never needs to be: it lives
// and dies on the engine goroutine.
type Lock struct {
	ledger ledger
}

// NewLock opens a lock scope. Requiring the access token keeps Lock
// construction on the engine goroutine, where exclusive engine access is
// already guaranteed.
func NewLock(access *engine.Access) *Lock {
	_ = access
	return &Lock{}
}

// Outstanding reports the number of active borrows, useful for asserting
// a scope is clean before ending it.
func (lk *Lock) Outstanding() int {
	return len(lk.ledger.owned) + len(lk.ledger.shared)
}

// TryBorrow registers an immutable borrow of data. It fails with
// BorrowError if the byte range of data overlaps any active mutable
// borrow; overlapping immutable borrows are fine. The returned Ref keeps
// the borrow active until released.
//
// Free functions rather than Lock methods because the element type is
// generic.
func TryBorrow[T any](lk *Lock, data []T) (*Ref[T], error) {
	r := rangeOf(data)
	if err := lk.ledger.tryAddShared(r); err != nil {
		return nil, err
	}
	return &Ref[T]{lk: lk, data: data, r: r}, nil
}

// TryBorrowMut registers a mutable borrow of data. It fails with
// BorrowError if the byte range of data overlaps any active borrow,
// mutable or immutable. The returned RefMut keeps the borrow active
// until released.
func TryBorrowMut[T any](lk *Lock, data []T) (*RefMut[T], error) {
	r := rangeOf(data)
	if err := lk.ledger.tryAddOwned(r); err != nil {
		return nil, err
	}
	return &RefMut[T]{lk: lk, data: data, r: r}, nil
}
