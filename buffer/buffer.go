package buffer

import (
	"github.com/dop251/goja"

	jsruntime "github.com/wippyai/js-runtime"
	"github.com/wippyai/js-runtime/borrow"
)

// Borrow registers an immutable borrow of b's bytes in the lock's
// ledger. Engine goroutine only.
func Borrow(lk *borrow.Lock, b jsruntime.Buffer) (*borrow.Ref[byte], error) {
	return borrow.TryBorrow(lk, b.Raw())
}

// BorrowMut registers a mutable borrow of b's bytes in the lock's
// ledger. Engine goroutine only.
func BorrowMut(lk *borrow.Lock, b jsruntime.Buffer) (*borrow.RefMut[byte], error) {
	return borrow.TryBorrowMut(lk, b.RawMut())
}

// ArrayBuffer adapts a goja ArrayBuffer to jsruntime.Buffer. The views
// alias the JS-owned backing storage, which is exactly why borrows of
// two ArrayBuffers over the same allocation conflict.
type ArrayBuffer struct {
	ab goja.ArrayBuffer
}

// NewArrayBuffer wraps a goja ArrayBuffer. Engine goroutine only, like
// any other access to JS-owned values.
func NewArrayBuffer(ab goja.ArrayBuffer) *ArrayBuffer {
	return &ArrayBuffer{ab: ab}
}

func (b *ArrayBuffer) Raw() []byte    { return b.ab.Bytes() }
func (b *ArrayBuffer) RawMut() []byte { return b.ab.Bytes() }

// Slice adapts plain Go-owned bytes to jsruntime.Buffer.
type Slice []byte

func (s Slice) Raw() []byte    { return s }
func (s Slice) RawMut() []byte { return s }
