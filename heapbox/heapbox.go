// Package heapbox provides a single-owner, fixed-size heap allocation.
//
// A Box exclusively owns its region. Cloning deep-copies the region into
// a fresh allocation; two boxes never alias.
package heapbox

import (
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/fault"
)

// Box owns [ptr, ptr+size) on its allocator.
type Box struct {
	alloc heapcore.Allocator
	ptr   unsafe.Pointer
	size  uintptr
}

// New allocates size bytes on a and copies size bytes from init into them.
// Faults if size is zero or the allocation fails.
func New(a heapcore.Allocator, size uintptr, init unsafe.Pointer) *Box {
	b := allocate(a, size, false)
	copy(b.Bytes(), unsafe.Slice((*byte)(init), size))
	return b
}

// NewZeroed allocates size zero-filled bytes on a.
func NewZeroed(a heapcore.Allocator, size uintptr) *Box {
	return allocate(a, size, true)
}

// FromBytes allocates a box holding a copy of data.
func FromBytes(a heapcore.Allocator, data []byte) *Box {
	if len(data) == 0 {
		fault.Raise("heapbox", "zero-sized allocation")
	}
	return New(a, uintptr(len(data)), unsafe.Pointer(unsafe.SliceData(data)))
}

func allocate(a heapcore.Allocator, size uintptr, zeroed bool) *Box {
	if size == 0 {
		fault.Raise("heapbox", "zero-sized allocation")
	}
	var p unsafe.Pointer
	if zeroed {
		p = a.AllocateZeroed(size)
	} else {
		p = a.Allocate(size)
	}
	if p == nil {
		fault.Raise("heapbox", "allocating %d bytes failed", size)
	}
	return &Box{alloc: a, ptr: p, size: size}
}

// Clone deep-copies the box into a new allocation on the same allocator.
func (b *Box) Clone() *Box {
	b.mustBeLive()
	return New(b.alloc, b.size, b.ptr)
}

// Allocator returns the allocator the box lives on.
func (b *Box) Allocator() heapcore.Allocator { return b.alloc }

// Size returns the payload size in bytes.
func (b *Box) Size() uintptr { return b.size }

// Get returns a read-only address of the payload. No bounds or type checks.
func (b *Box) Get() unsafe.Pointer {
	b.mustBeLive()
	return b.ptr
}

// GetMut returns a mutable address of the payload.
func (b *Box) GetMut() unsafe.Pointer {
	b.mustBeLive()
	return b.ptr
}

// Bytes returns the payload as a slice borrowing the box's memory.
func (b *Box) Bytes() []byte {
	b.mustBeLive()
	return unsafe.Slice((*byte)(b.ptr), b.size)
}

// Free deallocates exactly Size bytes. The box is unusable afterwards.
func (b *Box) Free() {
	b.mustBeLive()
	b.alloc.Deallocate(&b.ptr, b.size)
}

// Drop runs callback on the payload, then frees the box.
func (b *Box) Drop(callback func(unsafe.Pointer)) {
	b.mustBeLive()
	callback(b.ptr)
	b.Free()
}

func (b *Box) mustBeLive() {
	if b.ptr == nil {
		fault.Raise("heapbox", "use after free")
	}
}

// Of boxes a copy of v. T must not contain Go pointers.
func Of[T any](a heapcore.Allocator, v T) *Box {
	return New(a, unsafe.Sizeof(v), unsafe.Pointer(&v))
}

// Value reinterprets the payload of b as a *T. Faults if T does not fit.
func Value[T any](b *Box) *T {
	var zero T
	if unsafe.Sizeof(zero) > b.size {
		fault.Raise("heapbox", "value of %d bytes does not fit in %d-byte box", unsafe.Sizeof(zero), b.size)
	}
	return (*T)(b.GetMut())
}
