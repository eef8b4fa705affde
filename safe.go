package heapcore

import (
	"sync"
	"unsafe"
)

// SafeHeap is a mutex-protected wrapper around Heap for concurrent access.
// All operations are goroutine-safe but pay for the lock.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafeHeap creates a goroutine-safe heap.
func NewSafeHeap(opts ...Option) *SafeHeap {
	return &SafeHeap{h: NewHeap(opts...)}
}

// Allocate goroutine-safely allocates size bytes.
func (s *SafeHeap) Allocate(size uintptr) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Allocate(size)
}

// AllocateZeroed goroutine-safely allocates size zeroed bytes.
func (s *SafeHeap) AllocateZeroed(size uintptr) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.AllocateZeroed(size)
}

// Reallocate goroutine-safely resizes the block at *p.
func (s *SafeHeap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) ErrorKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Reallocate(p, oldSize, newSize)
}

// Deallocate goroutine-safely frees the block at *p and nils it.
func (s *SafeHeap) Deallocate(p *unsafe.Pointer, size uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Deallocate(p, size)
}

// Release goroutine-safely unmaps all memory and makes the heap unusable.
func (s *SafeHeap) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Release()
}
