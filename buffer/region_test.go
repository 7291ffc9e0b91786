package buffer

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/js-runtime/borrow"
	jserrors "github.com/wippyai/js-runtime/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func instantiateMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("module has no exported memory")
	}
	return mem
}

func TestNewRegion_NilMemory(t *testing.T) {
	_, err := NewRegion(nil, 0, 4)
	if err == nil {
		t.Fatal("expected error for nil memory")
	}
}

func TestNewRegion_OutOfBounds(t *testing.T) {
	mem := instantiateMemory(t)

	_, err := NewRegion(mem, 65536, 1) // exactly at boundary
	if err == nil {
		t.Fatal("expected error for out of bounds region")
	}
	target := &jserrors.Error{Phase: jserrors.PhaseBuffer, Kind: jserrors.KindOutOfBounds}
	if !errors.Is(err, target) {
		t.Fatalf("expected buffer/out-of-bounds error, got %v", err)
	}

	if _, err := NewRegion(mem, 65532, 4); err != nil {
		t.Fatalf("in-bounds region rejected: %v", err)
	}
}

func TestRegion_ViewsAliasMemory(t *testing.T) {
	mem := instantiateMemory(t)

	r, err := NewRegion(mem, 8, 4)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	if r.Offset() != 8 || r.Size() != 4 {
		t.Fatalf("region = [%d, +%d)", r.Offset(), r.Size())
	}

	if ok := mem.Write(8, []byte{1, 2, 3, 4}); !ok {
		t.Fatal("Write failed")
	}
	raw := r.Raw()
	for i, b := range raw {
		if b != byte(i+1) {
			t.Errorf("byte %d: expected %d, got %d", i, i+1, b)
		}
	}

	// Writes through the mutable view land in linear memory.
	r.RawMut()[0] = 99
	got, ok := mem.ReadByte(8)
	if !ok {
		t.Fatal("ReadByte failed")
	}
	if got != 99 {
		t.Errorf("expected 99 in linear memory, got %d", got)
	}
}

func TestRegion_BorrowConflicts(t *testing.T) {
	mem := instantiateMemory(t)
	lk := &borrow.Lock{}

	a, err := NewRegion(mem, 0, 8)
	if err != nil {
		t.Fatalf("NewRegion a: %v", err)
	}
	b, err := NewRegion(mem, 4, 8)
	if err != nil {
		t.Fatalf("NewRegion b: %v", err)
	}
	c, err := NewRegion(mem, 8, 8)
	if err != nil {
		t.Fatalf("NewRegion c: %v", err)
	}

	guard, err := BorrowMut(lk, a)
	if err != nil {
		t.Fatalf("BorrowMut a: %v", err)
	}

	// b overlaps a inside linear memory even though the two Regions were
	// created independently.
	if _, err := Borrow(lk, b); err == nil {
		t.Fatal("overlapping region borrow should fail")
	}
	cg, err := Borrow(lk, c)
	if err != nil {
		t.Fatalf("disjoint region borrow failed: %v", err)
	}
	cg.Release()

	guard.Release()
	if g, err := Borrow(lk, b); err != nil {
		t.Fatalf("borrow after release failed: %v", err)
	} else {
		g.Release()
	}
}
