// Package heapcore implements a manually-managed heap for Go.
//
// # Overview
//
// heapcore is the bottom layer of an ownership vocabulary: a raw allocator
// over memory mapped outside the Go heap, on top of which the subpackages
// build owning and borrowing types:
//
//   - heapbox: single-owner fixed-size heap allocation
//   - sharedbox: reference-counted heap allocation shared explicitly
//   - bytebuf: growable byte buffer with a trailing zero byte
//   - strview: borrowed UTF-8 views with substring and numeric parsing
//
// Nothing here is garbage collected. Every block is freed explicitly by
// its owner.
//
// # Basic Usage
//
//	h := heapcore.NewHeap()
//	defer h.Release()
//
//	p := h.Allocate(64)
//	if errk := h.Reallocate(&p, 64, 256); errk != heapcore.None {
//		// p is unchanged and still 64 bytes
//	}
//	h.Deallocate(&p, 256) // p is nil afterwards
//
// The package-level Allocate, AllocateZeroed, Reallocate and Deallocate use
// the process-wide heap returned by Default.
//
// # Sizes
//
// The heap stores no per-block metadata. The caller is the only source of
// truth for a block's size and must pass the original size back when
// reallocating or freeing. Small requests (up to MaxClassSize) are rounded
// to a power-of-two size class and carved from chunks; larger requests get
// their own page-rounded mapping.
//
// # Errors
//
// There are two severities. Programmer errors and unrecoverable resource
// conditions (zero-sized requests, freeing an unknown block, using a
// released heap) are fatal faults: they panic with a *fault.Fault. Expected
// failures are returned: Allocate returns nil when exhausted and Reallocate
// returns an ErrorKind, leaving the original block untouched.
//
// # Thread Safety
//
// Heap is not goroutine-safe. SafeHeap wraps it with a mutex, and the
// process-wide heap is a SafeHeap. The owning types in the subpackages are
// never synchronized: sharing one between goroutines needs external
// locking.
//
// # Metrics
//
//	m := h.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Live blocks: %d\n", m.LiveBlocks)
package heapcore
