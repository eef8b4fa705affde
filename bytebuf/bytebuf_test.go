package bytebuf

import (
	"math/rand/v2"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/heapcore"
)

// countingAllocator counts reallocations on top of a real heap.
type countingAllocator struct {
	*heapcore.Heap
	reallocs int
}

func (c *countingAllocator) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) heapcore.ErrorKind {
	c.reallocs++
	return c.Heap.Reallocate(p, oldSize, newSize)
}

func assertTerminated(t *testing.T, b *Buffer) {
	t.Helper()
	require.Greater(t, b.Cap(), b.Len())
	require.Equal(t, byte(0), b.BytesWithNull()[b.Len()])
}

func TestNew(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := New(h)
	assert.Zero(t, b.Len())
	assert.Equal(t, 1, b.LenWithNull())
	assert.Equal(t, 1, b.Cap())
	assertTerminated(t, b)
	b.Free()

	c := NewWithCap(h, 0)
	assert.Equal(t, 1, c.Cap())
	c.Free()

	d := NewWithCap(h, 64)
	assert.Equal(t, 64, d.Cap())
	assert.Same(t, h, d.Allocator())
	d.Free()
	assert.Zero(t, h.LiveBlocks())
}

func TestPushPop(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := New(h)
	for _, c := range []byte("hello") {
		b.Push(c)
		assertTerminated(t, b)
	}
	assert.Equal(t, "hello", string(b.Bytes()))
	assert.Equal(t, "hello\x00", string(b.BytesWithNull()))

	c, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, byte('o'), c)
	assert.Equal(t, "hell", string(b.Bytes()))
	assertTerminated(t, b)

	b.Clear()
	_, ok = b.Pop()
	assert.False(t, ok, "pop on empty reports none")
	assertTerminated(t, b)
	b.Free()
}

func TestPushZeroIsIgnored(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("ab"))
	b.Push(0)
	assert.Equal(t, 2, b.Len())
	b.Push('c')
	assert.Equal(t, "abc\x00", string(b.BytesWithNull()))
	assert.Equal(t, "abc", b.AsView().String())
	assertTerminated(t, b)
	b.Free()
}

func TestTerminatorInvariantUnderRandomOps(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	rng := rand.New(rand.NewPCG(1, 2))
	b := New(h)
	var model []byte

	for i := 0; i < 5000; i++ {
		if rng.IntN(3) == 0 {
			c, ok := b.Pop()
			if len(model) == 0 {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, model[len(model)-1], c)
				model = model[:len(model)-1]
			}
		} else {
			c := byte(rng.IntN(256))
			b.Push(c)
			if c != 0 {
				model = append(model, c)
			}
		}
		assertTerminated(t, b)
	}
	assert.Equal(t, model, b.Bytes())
	b.Free()
}

func TestGrowthIsAmortized(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()
	a := &countingAllocator{Heap: h}

	b := New(a)
	for i := 0; i < 10_000; i++ {
		b.Push('x')
	}
	assert.Equal(t, 10_000, b.Len())
	assert.LessOrEqual(t, a.reallocs, 15, "capacity doubles on growth")
	assertTerminated(t, b)
	b.Free()
}

func TestExtend(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("abc"))
	assert.Equal(t, 4, b.Cap())
	require.Equal(t, heapcore.None, b.Extend([]byte("defgh")))
	assert.Equal(t, "abcdefgh", string(b.Bytes()))
	assert.Equal(t, heapcore.None, b.Extend(nil))
	assertTerminated(t, b)
	b.Free()
}

func TestExtendFailureLeavesBufferUnchanged(t *testing.T) {
	h := heapcore.NewHeap(heapcore.WithChunkSize(4096), heapcore.WithLimit(4096))
	defer h.Release()

	b := FromBytes(h, []byte("keep"))
	ptr, capacity := b.Ptr(), b.Cap()

	errk := b.Extend(make([]byte, 10_000))
	assert.Equal(t, heapcore.OutOfMemory, errk)
	assert.Equal(t, ptr, b.Ptr())
	assert.Equal(t, capacity, b.Cap())
	assert.Equal(t, "keep", string(b.Bytes()))
	assertTerminated(t, b)

	assert.Equal(t, heapcore.OutOfMemory, b.Reserve(10_000))
	assert.Equal(t, capacity, b.Cap())
	b.Free()
}

func TestReserveShrink(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("ab"))
	require.Equal(t, heapcore.None, b.Reserve(100))
	assert.Equal(t, 103, b.Cap())
	assert.Equal(t, heapcore.None, b.Reserve(10), "already large enough")
	assert.Equal(t, 103, b.Cap())

	assert.Equal(t, heapcore.OutOfMemory, b.Reserve(^uintptr(0)), "byte count overflows")
	assert.Equal(t, heapcore.OutOfMemory, b.Reserve(^uintptr(0)-1))
	assert.Equal(t, 103, b.Cap())

	require.Equal(t, heapcore.None, b.Shrink())
	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, "ab", string(b.Bytes()))
	assertTerminated(t, b)
	b.Free()
	assert.Zero(t, h.LiveBlocks())
}

func TestTruncate(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("truncate"))
	b.Truncate(100)
	assert.Equal(t, 8, b.Len())
	b.Truncate(-1)
	assert.Equal(t, 8, b.Len())
	b.Truncate(5)
	assert.Equal(t, "trunc", string(b.Bytes()))
	assertTerminated(t, b)
	b.Free()
}

func TestClone(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("source"))
	require.Equal(t, heapcore.None, b.Reserve(50))
	c := b.Clone()

	assert.NotEqual(t, b.Ptr(), c.Ptr())
	assert.Equal(t, b.Cap(), c.Cap())
	assert.Equal(t, "source\x00", string(c.BytesWithNull()))

	c.Push('!')
	assert.Equal(t, "source", string(b.Bytes()))
	assert.Equal(t, "source!", string(c.Bytes()))

	b.Free()
	c.Free()
}

func TestAsView(t *testing.T) {
	h := heapcore.NewHeap()
	defer h.Release()

	b := FromBytes(h, []byte("a🦀b"))
	v := b.AsView()
	assert.Equal(t, 6, v.ByteLen())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, b.Ptr(), v.Ptr())

	b.Push(0xff)
	assert.Panics(t, func() { b.AsView() })
	assert.Equal(t, 7, b.AsViewUnchecked().ByteLen())
	b.Free()
}

func TestFaults(t *testing.T) {
	h := heapcore.NewHeap(heapcore.WithChunkSize(4096), heapcore.WithLimit(4096))
	defer h.Release()

	assert.PanicsWithError(t, "bytebuf: allocating 8192 bytes failed", func() { NewWithCap(h, 8192) })

	b := NewWithCap(h, 2048)
	for i := 0; i < 2047; i++ {
		b.Push('a')
	}
	assert.Panics(t, func() { b.Push('b') }, "growth beyond the limit faults")
	assert.Equal(t, 2047, b.Len())
	assertTerminated(t, b)

	c := b.Clone() // fills the remaining half of the only chunk
	assert.Panics(t, func() { c.Clone() })
	c.Free()

	b.Free()
	assert.PanicsWithError(t, "bytebuf: use after free", func() { b.Push('x') })
	assert.PanicsWithError(t, "bytebuf: use after free", func() { b.Pop() })
}
