package buffer

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/js-runtime/errors"
)

// Region adapts a byte range of wasm linear memory to jsruntime.Buffer.
// wazero's Memory.Read returns views into the linear memory, not copies,
// so overlapping Regions (or a Region and any other view of the same
// memory) alias, and the borrow ledger sees it.
type Region struct {
	mem    api.Memory
	offset uint32
	size   uint32
}

// NewRegion wraps memory[offset, offset+size). Bounds are validated
// here; wasm memory can only grow, so a range valid now stays valid.
func NewRegion(mem api.Memory, offset, size uint32) (*Region, error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseBuffer, "nil memory")
	}
	if size > 0 {
		if _, ok := mem.Read(offset, size); !ok {
			return nil, errors.OutOfBounds(errors.PhaseBuffer, uint64(offset), uint64(size), uint64(mem.Size()))
		}
	}
	return &Region{mem: mem, offset: offset, size: size}, nil
}

// Offset returns the region's start within the memory.
func (r *Region) Offset() uint32 { return r.offset }

// Size returns the region's length in bytes.
func (r *Region) Size() uint32 { return r.size }

func (r *Region) Raw() []byte {
	b, _ := r.mem.Read(r.offset, r.size)
	return b
}

func (r *Region) RawMut() []byte {
	b, _ := r.mem.Read(r.offset, r.size)
	return b
}
