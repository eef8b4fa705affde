package heapcore

import (
	"sync"
	"unsafe"
)

// Allocator is the raw allocation surface every owning type is built on.
//
// Size is never stored by the allocator: callers pass the same non-zero
// size they allocated with to Reallocate and Deallocate. A zero size is a
// fatal fault.
type Allocator interface {
	Allocate(size uintptr) unsafe.Pointer
	AllocateZeroed(size uintptr) unsafe.Pointer
	Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) ErrorKind
	Deallocate(p *unsafe.Pointer, size uintptr)
}

var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*SafeHeap)(nil)
)

var (
	defaultOnce sync.Once
	defaultHeap *SafeHeap
)

// Default returns the process-wide heap.
// Set HEAPCORE_LOG_HEAP=1 to log its chunk lifecycle to stderr.
func Default() *SafeHeap {
	defaultOnce.Do(func() {
		var opts []Option
		if l := envLogger(); l != nil {
			opts = append(opts, WithLogger(l))
		}
		defaultHeap = NewSafeHeap(opts...)
	})
	return defaultHeap
}

// Allocate allocates size bytes on the process-wide heap.
func Allocate(size uintptr) unsafe.Pointer {
	return Default().Allocate(size)
}

// AllocateZeroed allocates size zeroed bytes on the process-wide heap.
func AllocateZeroed(size uintptr) unsafe.Pointer {
	return Default().AllocateZeroed(size)
}

// Reallocate resizes a block owned by the process-wide heap.
func Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) ErrorKind {
	return Default().Reallocate(p, oldSize, newSize)
}

// Deallocate frees a block owned by the process-wide heap and nils *p.
func Deallocate(p *unsafe.Pointer, size uintptr) {
	Default().Deallocate(p, size)
}

// New allocates a T on a and copies v into it. Returns nil if a is exhausted.
// T must not contain Go pointers: heap memory is invisible to the collector.
// Zero-sized types fault like any zero-sized request.
func New[T any](a Allocator, v T) *T {
	p := a.Allocate(unsafe.Sizeof(v))
	if p == nil {
		return nil
	}
	*(*T)(p) = v
	return (*T)(p)
}

// NewZeroed allocates a zeroed T on a. Returns nil if a is exhausted.
func NewZeroed[T any](a Allocator) *T {
	var zero T
	return (*T)(a.AllocateZeroed(unsafe.Sizeof(zero)))
}

// Delete frees a T obtained from New or NewZeroed on the same allocator.
func Delete[T any](a Allocator, t *T) {
	p := unsafe.Pointer(t)
	a.Deallocate(&p, unsafe.Sizeof(*t))
}
