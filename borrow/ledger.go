package borrow

import "unsafe"

// BorrowError indicates a requested borrow would alias an existing
// incompatible borrow. Always locally recoverable: release the
// conflicting guard and retry.
type BorrowError struct{}

func (BorrowError) Error() string {
	return "borrow: range overlaps an active borrow"
}

// byteRange is a half-open [start, end) range of byte addresses. Ranges
// come from slice backing storage, so two distinct handles over
// overlapping memory produce overlapping ranges.
type byteRange struct {
	start uintptr
	end   uintptr
}

// overlaps reports whether two half-open ranges intersect. Empty ranges
// never intersect anything.
func (r byteRange) overlaps(o byteRange) bool {
	return r.start < o.end && o.start < r.end
}

// rangeOf converts a slice of any element type to its byte address
// range. Alignment is irrelevant; only the covered bytes matter.
func rangeOf[T any](data []T) byteRange {
	if len(data) == 0 {
		return byteRange{}
	}
	var elem T
	start := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	return byteRange{
		start: start,
		end:   start + uintptr(len(data))*unsafe.Sizeof(elem),
	}
}

// ledger is the bookkeeping behind one Lock.
type ledger struct {
	// Mutable borrows. Never overlap each other or any shared borrow.
	owned []byteRange

	// Immutable borrows. May overlap and may contain duplicates.
	shared []byteRange
}

// tryAddShared records an immutable borrow unless it overlaps an active
// mutable borrow.
func (l *ledger) tryAddShared(r byteRange) error {
	if conflicts(l.owned, r) {
		return BorrowError{}
	}
	l.shared = append(l.shared, r)
	return nil
}

// tryAddOwned records a mutable borrow unless it overlaps any active
// borrow at all.
func (l *ledger) tryAddOwned(r byteRange) error {
	if conflicts(l.owned, r) || conflicts(l.shared, r) {
		return BorrowError{}
	}
	l.owned = append(l.owned, r)
	return nil
}

// remove deletes the most recently inserted entry exactly equal to r.
// The shared list permits duplicates, so removal is by exact range
// match from the end, dropping one entry only.
func remove(list *[]byteRange, r byteRange) {
	s := *list
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == r {
			*list = append(s[:i], s[i+1:]...)
			return
		}
	}
}

func conflicts(existing []byteRange, r byteRange) bool {
	for _, e := range existing {
		if e.overlaps(r) {
			return true
		}
	}
	return false
}
