package sharedbox

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/heapcore"
)

func TestNew(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	v := uint64(0x0102030405060708)
	s := New(h, 8, unsafe.Pointer(&v))
	assert.Equal(t, uintptr(1), s.Owners())
	assert.Equal(t, uintptr(8), s.Size())
	assert.Equal(t, v, *(*uint64)(s.Get()))

	s.Free()
	assert.Zero(t, h.LiveBlocks())
}

func TestShareCountsOwners(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	a := FromBytes(h, []byte("payload"))
	b := a.Share()

	assert.Equal(t, uintptr(2), a.Owners())
	assert.Equal(t, uintptr(2), b.Owners())
	assert.Equal(t, a.Get(), b.Get(), "shared handles alias the same payload")
	assert.Equal(t, 1, h.LiveBlocks(), "share never copies")

	c := b.Share()
	assert.Equal(t, uintptr(3), a.Owners())

	a.Free()
	assert.Equal(t, uintptr(2), c.Owners())
	c.Free()
	assert.Equal(t, uintptr(1), b.Owners())
	assert.Equal(t, "payload", string(b.Bytes()), "payload outlives freed owners")
	assert.Equal(t, 1, h.LiveBlocks())

	b.Free()
	assert.Zero(t, h.LiveBlocks())
}

func TestWritesVisibleThroughEveryOwner(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	a := Of(h, int64(1))
	b := a.Share()
	*Value[int64](a) = 99
	assert.Equal(t, int64(99), *Value[int64](b))

	a.Free()
	b.Free()
}

func TestDropRunsOnLastOwner(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := Of(h, uint32(7))
	shared := s.Share()

	var seen []uint32
	record := func(p unsafe.Pointer) { seen = append(seen, *(*uint32)(p)) }

	s.Drop(record)
	assert.Empty(t, seen, "another owner is still alive")
	assert.Equal(t, uintptr(1), shared.Owners())
	assert.Equal(t, uint32(7), *Value[uint32](shared))

	shared.Drop(record)
	assert.Equal(t, []uint32{7}, seen)
	assert.Zero(t, h.LiveBlocks())
	assert.Panics(t, func() { shared.Drop(record) }, "use after free")
}

func TestNewZeroed(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	d := FromBytes(h, []byte("0123456789abcdef"))
	d.Free()

	s := NewZeroed(h, 16)
	assert.Equal(t, make([]byte, 16), s.Bytes())
	assert.Equal(t, uintptr(1), s.Owners())
	s.Free()
}

func TestEmptyPayload(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	s := NewZeroed(h, 0)
	assert.Empty(t, s.Bytes())
	s.Share().Free()
	s.Free()
	assert.Zero(t, h.LiveBlocks())
}

func TestFaults(t *testing.T) {
	h := heapcore.NewHeap(heapcore.WithChunkSize(4096), heapcore.WithLimit(4096))
	defer h.Release()

	assert.Panics(t, func() { NewZeroed(h, math.MaxInt) })
	assert.Panics(t, func() { NewZeroed(h, math.MaxUint) })
	assert.PanicsWithError(t, "sharedbox: allocating 8200 bytes failed", func() { NewZeroed(h, 8192) })

	s := NewZeroed(h, 4)
	other := s.Share()
	s.Free()
	assert.PanicsWithError(t, "sharedbox: use after free", func() { s.Owners() })
	assert.PanicsWithError(t, "sharedbox: use after free", func() { s.Share() })
	require.Equal(t, uintptr(1), other.Owners())
	other.Free()
}
