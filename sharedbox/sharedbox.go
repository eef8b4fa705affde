// Package sharedbox provides a reference-counted heap allocation.
//
// A control block holds the owner count followed by the payload. Share
// is the only way to create a second handle over the same block; the last
// Free deallocates it.
//
// Counting is a plain, non-atomic increment and decrement. Handles that
// refer to the same block must not be shared or freed concurrently
// without external synchronization.
package sharedbox

import (
	"math"
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/fault"
)

// headerSize is the space reserved for the owner count ahead of the payload.
const headerSize = unsafe.Sizeof(uintptr(0))

// Shared is one owner of a reference-counted control block.
type Shared struct {
	alloc heapcore.Allocator
	ctrl  unsafe.Pointer
	size  uintptr
}

// New allocates a control block with one owner and copies size bytes
// from init into its payload.
func New(a heapcore.Allocator, size uintptr, init unsafe.Pointer) *Shared {
	s := allocate(a, size)
	if size > 0 {
		copy(s.Bytes(), unsafe.Slice((*byte)(init), size))
	}
	return s
}

// NewZeroed allocates a control block with one owner and a zeroed payload.
// The caller must ensure an all-zero payload is valid for its type.
func NewZeroed(a heapcore.Allocator, size uintptr) *Shared {
	s := allocate(a, size)
	clear(s.Bytes())
	return s
}

// FromBytes allocates a shared block holding a copy of data.
func FromBytes(a heapcore.Allocator, data []byte) *Shared {
	return New(a, uintptr(len(data)), unsafe.Pointer(unsafe.SliceData(data)))
}

func allocate(a heapcore.Allocator, size uintptr) *Shared {
	if size > math.MaxInt-headerSize {
		fault.Raise("sharedbox", "payload of %d bytes overflows the control block", size)
	}
	ctrl := a.Allocate(headerSize + size)
	if ctrl == nil {
		fault.Raise("sharedbox", "allocating %d bytes failed", headerSize+size)
	}
	*(*uintptr)(ctrl) = 1
	return &Shared{alloc: a, ctrl: ctrl, size: size}
}

// Share registers a new owner and returns a handle over the same block.
// The payload is not copied.
func (s *Shared) Share() *Shared {
	s.mustBeLive()
	*s.count()++
	return &Shared{alloc: s.alloc, ctrl: s.ctrl, size: s.size}
}

// Owners returns the number of handles sharing the block.
func (s *Shared) Owners() uintptr {
	s.mustBeLive()
	return *s.count()
}

// Size returns the payload size in bytes.
func (s *Shared) Size() uintptr { return s.size }

// Get returns a read-only address of the payload.
func (s *Shared) Get() unsafe.Pointer {
	s.mustBeLive()
	return unsafe.Add(s.ctrl, headerSize)
}

// Bytes returns the payload as a slice borrowing the block.
func (s *Shared) Bytes() []byte {
	return unsafe.Slice((*byte)(s.Get()), s.size)
}

// Free drops this owner. The control block is deallocated when the last
// owner is freed. The handle is unusable afterwards.
func (s *Shared) Free() {
	s.mustBeLive()
	n := s.count()
	*n--
	if *n == 0 {
		s.alloc.Deallocate(&s.ctrl, headerSize+s.size)
		return
	}
	s.ctrl = nil
}

// Drop frees this owner like Free. When it is the last owner, callback
// runs on the payload before the control block is deallocated.
func (s *Shared) Drop(callback func(unsafe.Pointer)) {
	s.mustBeLive()
	if *s.count() == 1 {
		callback(s.Get())
	}
	s.Free()
}

func (s *Shared) count() *uintptr { return (*uintptr)(s.ctrl) }

func (s *Shared) mustBeLive() {
	if s.ctrl == nil {
		fault.Raise("sharedbox", "use after free")
	}
}

// Of shares a copy of v. T must not contain Go pointers.
func Of[T any](a heapcore.Allocator, v T) *Shared {
	return New(a, unsafe.Sizeof(v), unsafe.Pointer(&v))
}

// Value reinterprets the payload of s as a *T. Faults if T does not fit.
func Value[T any](s *Shared) *T {
	var zero T
	if unsafe.Sizeof(zero) > s.size {
		fault.Raise("sharedbox", "value of %d bytes does not fit in %d-byte payload", unsafe.Sizeof(zero), s.size)
	}
	return (*T)(s.Get())
}
