package jsruntime

// Buffer is engine-owned byte storage that can participate in dynamic
// borrow checking. Both views alias the underlying storage: the ranges
// they cover are what the borrow ledger tracks, so two Buffers backed by
// overlapping memory conflict even though they are distinct values.
//
// Raw returns a read view and RawMut a write view of the same bytes.
// Neither transfers ownership; callers must hold a borrow guard for the
// duration of any access.
type Buffer interface {
	Raw() []byte
	RawMut() []byte
}
