// Package bytebuf provides a growable byte buffer that always keeps a zero
// byte right after its contents, so its memory can be handed to C-string
// consumers as is.
//
// After every mutating operation buf[Len()] == 0 and Cap() > Len().
package bytebuf

import (
	"math"
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/fault"
	"github.com/pavanmanishd/heapcore/strview"
)

// GrowthFactor is the minimum multiplier applied to the capacity on growth.
const GrowthFactor = 2

// Buffer is a single-owner growable byte array with a trailing zero byte.
type Buffer struct {
	alloc heapcore.Allocator
	ptr   unsafe.Pointer
	len   uintptr
	cap   uintptr
}

// New returns an empty buffer on a.
func New(a heapcore.Allocator) *Buffer {
	return NewWithCap(a, 1)
}

// NewWithCap returns an empty buffer with room for capacity bytes,
// terminator included. A capacity below 1 is raised to 1.
func NewWithCap(a heapcore.Allocator, capacity uintptr) *Buffer {
	capacity = max(capacity, 1)
	p := a.Allocate(capacity)
	if p == nil {
		fault.Raise("bytebuf", "allocating %d bytes failed", capacity)
	}
	*(*byte)(p) = 0
	return &Buffer{alloc: a, ptr: p, cap: capacity}
}

// FromBytes returns a buffer holding a copy of data.
func FromBytes(a heapcore.Allocator, data []byte) *Buffer {
	b := NewWithCap(a, uintptr(len(data))+1)
	copy(unsafe.Slice((*byte)(b.ptr), len(data)), data)
	b.setLen(uintptr(len(data)))
	return b
}

// Len returns the number of bytes, terminator excluded.
func (b *Buffer) Len() int { return int(b.len) }

// LenWithNull returns Len() + 1.
func (b *Buffer) LenWithNull() int { return int(b.len) + 1 }

// Cap returns the number of bytes reserved, terminator included.
func (b *Buffer) Cap() int { return int(b.cap) }

// Allocator returns the allocator backing the buffer.
func (b *Buffer) Allocator() heapcore.Allocator { return b.alloc }

// Ptr returns the address of the first byte. The memory is zero-terminated.
func (b *Buffer) Ptr() unsafe.Pointer {
	b.mustBeLive()
	return b.ptr
}

// Bytes returns the contents, terminator excluded, borrowing the buffer.
// The slice is invalidated by any growth.
func (b *Buffer) Bytes() []byte {
	b.mustBeLive()
	return unsafe.Slice((*byte)(b.ptr), b.len)
}

// BytesWithNull returns the contents followed by the terminator.
func (b *Buffer) BytesWithNull() []byte {
	b.mustBeLive()
	return unsafe.Slice((*byte)(b.ptr), b.len+1)
}

// Push appends c. Pushing a zero byte has no effect, since it would end
// the C string early. Faults if the buffer must grow and cannot.
func (b *Buffer) Push(c byte) {
	b.mustBeLive()
	if c == 0 {
		return
	}
	if b.len+1 == b.cap {
		if errk := b.grow(b.len + 2); errk != heapcore.None {
			fault.Raise("bytebuf", "push: growing to hold %d bytes: %v", b.len+2, errk)
		}
	}
	*b.at(b.len) = c
	b.setLen(b.len + 1)
}

// Pop removes and returns the last byte. It reports false if the buffer is
// empty.
func (b *Buffer) Pop() (byte, bool) {
	b.mustBeLive()
	if b.len == 0 {
		return 0, false
	}
	c := *b.at(b.len - 1)
	b.setLen(b.len - 1)
	return c, true
}

// Extend appends data as is. On failure the buffer is left unchanged.
func (b *Buffer) Extend(data []byte) heapcore.ErrorKind {
	b.mustBeLive()
	if len(data) == 0 {
		return heapcore.None
	}
	need := b.len + uintptr(len(data)) + 1
	if need > b.cap {
		if errk := b.grow(need); errk != heapcore.None {
			return errk
		}
	}
	copy(unsafe.Slice((*byte)(unsafe.Add(b.ptr, b.len)), len(data)), data)
	b.setLen(b.len + uintptr(len(data)))
	return heapcore.None
}

// Reserve makes room for at least additional more bytes without further
// growth. On failure, including a byte count that overflows, the buffer is
// left unchanged.
func (b *Buffer) Reserve(additional uintptr) heapcore.ErrorKind {
	b.mustBeLive()
	need := b.len + additional + 1
	if need <= b.len {
		return heapcore.OutOfMemory
	}
	if need <= b.cap {
		return heapcore.None
	}
	return b.resize(need)
}

// Shrink releases capacity beyond Len() + 1.
func (b *Buffer) Shrink() heapcore.ErrorKind {
	b.mustBeLive()
	if b.cap == b.len+1 {
		return heapcore.None
	}
	return b.resize(b.len + 1)
}

// Truncate shortens the buffer to n bytes. It is a no-op if n >= Len().
func (b *Buffer) Truncate(n int) {
	b.mustBeLive()
	if n >= 0 && uintptr(n) < b.len {
		b.setLen(uintptr(n))
	}
}

// Clear empties the buffer, keeping its capacity.
func (b *Buffer) Clear() { b.Truncate(0) }

// Clone copies the contents and terminator into a new buffer of the same
// capacity. Faults if the allocation fails.
func (b *Buffer) Clone() *Buffer {
	b.mustBeLive()
	p := b.alloc.Allocate(b.cap)
	if p == nil {
		fault.Raise("bytebuf", "clone: allocating %d bytes failed", b.cap)
	}
	copy(unsafe.Slice((*byte)(p), b.len+1), b.BytesWithNull())
	return &Buffer{alloc: b.alloc, ptr: p, len: b.len, cap: b.cap}
}

// AsView returns a view of the contents, terminator excluded. Faults if
// the contents are not valid UTF-8.
func (b *Buffer) AsView() strview.View {
	return strview.New(b.Bytes())
}

// AsViewUnchecked is AsView without UTF-8 validation.
func (b *Buffer) AsViewUnchecked() strview.View {
	return strview.NewUnchecked(b.Bytes())
}

// Free releases the buffer's memory. The buffer is unusable afterwards.
func (b *Buffer) Free() {
	b.mustBeLive()
	b.alloc.Deallocate(&b.ptr, b.cap)
	b.len, b.cap = 0, 0
}

// NextCap returns the capacity a container holding current units grows to
// when it needs room for need: GrowthFactor times current, or need if that
// is larger.
func NextCap(current, need uintptr) uintptr {
	if current > math.MaxInt/GrowthFactor {
		return need
	}
	return max(need, current*GrowthFactor)
}

// grow raises the capacity to at least need.
func (b *Buffer) grow(need uintptr) heapcore.ErrorKind {
	return b.resize(NextCap(b.cap, need))
}

func (b *Buffer) resize(newCap uintptr) heapcore.ErrorKind {
	if errk := b.alloc.Reallocate(&b.ptr, b.cap, newCap); errk != heapcore.None {
		return errk
	}
	b.cap = newCap
	return heapcore.None
}

func (b *Buffer) setLen(n uintptr) {
	b.len = n
	*b.at(n) = 0
}

func (b *Buffer) at(i uintptr) *byte { return (*byte)(unsafe.Add(b.ptr, i)) }

func (b *Buffer) mustBeLive() {
	if b.ptr == nil {
		fault.Raise("bytebuf", "use after free")
	}
}
