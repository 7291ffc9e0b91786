// Package buffer adapts engine-owned byte storage to the borrow ledger.
//
// Anything implementing jsruntime.Buffer (a raw read view plus a raw
// write view of the same bytes) can participate:
//
//	lk := borrow.NewLock(access)
//	buf := buffer.NewArrayBuffer(ab)
//
//	g, err := buffer.BorrowMut(lk, buf)
//	if err != nil {
//	    // some other view of these bytes is borrowed
//	}
//	copy(g.Slice(), payload)
//	g.Release()
//
// Two adapters are provided: ArrayBuffer for goja-owned JS ArrayBuffers,
// and Region for byte ranges of wasm linear memory (wazero api.Memory).
// Slice covers plain Go-owned bytes, mostly for tests and glue.
package buffer
