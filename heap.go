package heapcore

import (
	"log/slog"
	"math/bits"
	"sort"
	"unsafe"

	"github.com/pavanmanishd/heapcore/fault"
)

const (
	// DefaultChunkSize is the default chunk size for new heaps (64 KiB).
	DefaultChunkSize = 1 << 16

	// MinClassSize is the smallest block handed out for small requests.
	// Every small block is aligned to it.
	MinClassSize = 16

	// MaxClassSize is the largest request served from chunks. Bigger
	// requests get a dedicated page-rounded span.
	MaxClassSize = 1 << 15

	numClasses = 12 // 16 B .. 32 KiB, powers of two
)

// freeBit marks a class entry whose block sits on a free list.
const freeBit = 0x80

// chunk is a mapped region carved into small blocks by bump pointer.
type chunk struct {
	mem    []byte
	offset uintptr

	// classes has one entry per MinClassSize granule of mem: zero unless a
	// block starts there, otherwise the block's class index plus one, with
	// freeBit set while the block is free.
	classes []uint8
}

func (c *chunk) base() uintptr { return uintptr(unsafe.Pointer(unsafe.SliceData(c.mem))) }

// slot returns the class entry for a block starting at addr, or nil if
// addr is not granule aligned.
func (c *chunk) slot(addr uintptr) *uint8 {
	off := addr - c.base()
	if off%MinClassSize != 0 {
		return nil
	}
	return &c.classes[off/MinClassSize]
}

// Heap is a size-classed allocator over OS-mapped chunks.
// Not goroutine-safe. Use SafeHeap for concurrent access.
//
// The heap keeps no per-block header: the size passed to Deallocate and
// Reallocate selects the size class a block returns to, so it must match
// the size used to obtain the block. Each chunk records the class of every
// block carved from it, and a size that maps to another class faults.
type Heap struct {
	chunks  []*chunk // sorted by base address
	current *chunk
	free    [numClasses][]unsafe.Pointer
	spans   map[uintptr][]byte

	chunkSize int
	limit     int
	log       *slog.Logger

	mapped   int
	inUse    int
	live     int
	released bool
}

// NewHeap creates an empty heap. Chunks are mapped lazily on first use.
func NewHeap(opts ...Option) *Heap {
	cfg := newConfig(opts)
	return &Heap{
		spans:     make(map[uintptr][]byte),
		chunkSize: cfg.chunkSize,
		limit:     cfg.limit,
		log:       cfg.logger,
	}
}

// Allocate returns a block of at least size bytes, or nil if the heap is
// exhausted. The block content is unspecified.
func (h *Heap) Allocate(size uintptr) unsafe.Pointer {
	h.mustBeUsable("allocate", size)
	return h.allocate(size)
}

// AllocateZeroed is like Allocate but the returned block is zero-filled.
func (h *Heap) AllocateZeroed(size uintptr) unsafe.Pointer {
	h.mustBeUsable("allocate_zeroed", size)
	p := h.allocate(size)
	if p != nil {
		clear(unsafe.Slice((*byte)(p), size))
	}
	return p
}

// Reallocate moves the block at *p from oldSize to newSize bytes and keeps
// its first min(oldSize, newSize) bytes. On success *p is updated and None
// is returned. On failure *p and its content are left untouched.
func (h *Heap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) ErrorKind {
	if oldSize == 0 || newSize == 0 {
		fault.Raise("heap", "reallocate: zero-sized request")
	}
	if h.released {
		return HeapNotFound
	}
	if p == nil || *p == nil || !h.owns(*p, oldSize) {
		return MemoryNotFound
	}
	if blockSize(oldSize) == blockSize(newSize) {
		return None
	}

	np := h.allocate(newSize)
	if np == nil {
		return OutOfMemory
	}
	copy(unsafe.Slice((*byte)(np), min(oldSize, newSize)), unsafe.Slice((*byte)(*p), min(oldSize, newSize)))
	h.deallocate(*p, oldSize)
	*p = np
	return None
}

// Deallocate returns the block at *p to the heap and sets *p to nil.
// size must be the size the block was obtained with.
func (h *Heap) Deallocate(p *unsafe.Pointer, size uintptr) {
	h.mustBeUsable("deallocate", size)
	if p == nil || *p == nil {
		fault.Raise("heap", "deallocate: nil block")
	}
	h.deallocate(*p, size)
	*p = nil
}

// Release unmaps every chunk and span. The heap is unusable afterwards.
func (h *Heap) Release() {
	if h.released {
		return
	}
	for _, c := range h.chunks {
		if err := unmapMemory(c.mem); err != nil {
			fault.Raise("heap", "release: unmap chunk: %v", err)
		}
	}
	for _, mem := range h.spans {
		if err := unmapMemory(mem); err != nil {
			fault.Raise("heap", "release: unmap span: %v", err)
		}
	}
	h.log.Debug("heap released", "chunks", len(h.chunks), "spans", len(h.spans), "mapped", h.mapped)

	h.chunks = nil
	h.current = nil
	h.free = [numClasses][]unsafe.Pointer{}
	h.spans = nil
	h.mapped, h.inUse, h.live = 0, 0, 0
	h.released = true
}

func (h *Heap) mustBeUsable(op string, size uintptr) {
	if h.released {
		fault.Raise("heap", "%s: heap not found (use after Release)", op)
	}
	if size == 0 {
		fault.Raise("heap", "%s: zero-sized request", op)
	}
}

func (h *Heap) allocate(size uintptr) unsafe.Pointer {
	if size > MaxClassSize {
		return h.allocateSpan(size)
	}
	idx := classIndex(size)
	csize := classSize(idx)

	// Fast path: recycled block of the same class
	if n := len(h.free[idx]); n > 0 {
		p := h.free[idx][n-1]
		h.free[idx][n-1] = nil
		h.free[idx] = h.free[idx][:n-1]
		*h.chunkOf(uintptr(p)).slot(uintptr(p)) &^= freeBit
		h.inUse += int(csize)
		h.live++
		return p
	}

	c := h.current
	if c == nil || alignUp(c.offset)+csize > uintptr(len(c.mem)) {
		c = h.grow(int(csize))
		if c == nil {
			return nil
		}
	}
	off := alignUp(c.offset)
	c.offset = off + csize
	c.classes[off/MinClassSize] = uint8(idx + 1)
	h.inUse += int(csize)
	h.live++
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.mem)), off)
}

func (h *Heap) allocateSpan(size uintptr) unsafe.Pointer {
	n := pageRound(size)
	if n < size || !h.canMap(n) {
		return nil
	}
	mem, err := mapMemory(int(n))
	if err != nil {
		h.log.Debug("heap span map failed", "size", n, "err", err)
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(mem))
	h.spans[uintptr(p)] = mem
	h.mapped += len(mem)
	h.inUse += len(mem)
	h.live++
	return p
}

func (h *Heap) deallocate(p unsafe.Pointer, size uintptr) {
	addr := uintptr(p)
	if size > MaxClassSize {
		mem, ok := h.spans[addr]
		if !ok {
			if h.chunkOf(addr) != nil {
				fault.Raise("heap", "deallocate: block %#x freed with misreported size %d", addr, size)
			}
			fault.Raise("heap", "deallocate: block %#x not found", addr)
		}
		if uintptr(len(mem)) != pageRound(size) {
			fault.Raise("heap", "deallocate: span %#x freed with misreported size %d (mapped %d)", addr, size, len(mem))
		}
		if err := unmapMemory(mem); err != nil {
			fault.Raise("heap", "deallocate: unmap span %#x: %v", addr, err)
		}
		delete(h.spans, addr)
		h.mapped -= len(mem)
		h.inUse -= len(mem)
		h.live--
		return
	}

	c := h.chunkOf(addr)
	if c == nil {
		if _, ok := h.spans[addr]; ok {
			fault.Raise("heap", "deallocate: span %#x freed with misreported size %d", addr, size)
		}
		fault.Raise("heap", "deallocate: block %#x not found", addr)
	}
	idx := classIndex(size)
	slot := c.slot(addr)
	switch {
	case slot == nil || *slot == 0:
		fault.Raise("heap", "deallocate: %#x is not the start of a block", addr)
	case *slot&freeBit != 0:
		fault.Raise("heap", "deallocate: block %#x freed twice", addr)
	case int(*slot)-1 != idx:
		fault.Raise("heap", "deallocate: block %#x of %d bytes freed with misreported size %d",
			addr, classSize(int(*slot)-1), size)
	}
	*slot |= freeBit
	h.free[idx] = append(h.free[idx], p)
	h.inUse -= int(classSize(idx))
	h.live--
}

// owns reports whether p is a live block of the given size.
func (h *Heap) owns(p unsafe.Pointer, size uintptr) bool {
	if size > MaxClassSize {
		mem, ok := h.spans[uintptr(p)]
		return ok && uintptr(len(mem)) == pageRound(size)
	}
	c := h.chunkOf(uintptr(p))
	if c == nil {
		return false
	}
	slot := c.slot(uintptr(p))
	return slot != nil && *slot == uint8(classIndex(size)+1)
}

// chunkOf finds the chunk containing addr by binary search over chunk bases.
func (h *Heap) chunkOf(addr uintptr) *chunk {
	i := sort.Search(len(h.chunks), func(i int) bool {
		return h.chunks[i].base() > addr
	})
	if i == 0 {
		return nil
	}
	c := h.chunks[i-1]
	if addr-c.base() < uintptr(len(c.mem)) {
		return c
	}
	return nil
}

// grow maps a new chunk of at least min bytes and makes it current.
// Returns nil when the limit is reached or the OS refuses the mapping.
func (h *Heap) grow(min int) *chunk {
	size := h.chunkSize
	if min > size {
		size = min
	}
	if !h.canMap(uintptr(size)) {
		return nil
	}
	mem, err := mapMemory(size)
	if err != nil {
		h.log.Debug("heap chunk map failed", "size", size, "err", err)
		return nil
	}
	c := &chunk{mem: mem, classes: make([]uint8, (size+MinClassSize-1)/MinClassSize)}
	i := sort.Search(len(h.chunks), func(i int) bool {
		return h.chunks[i].base() > c.base()
	})
	h.chunks = append(h.chunks, nil)
	copy(h.chunks[i+1:], h.chunks[i:])
	h.chunks[i] = c
	h.current = c
	h.mapped += size
	h.log.Debug("heap chunk mapped", "size", size, "chunks", len(h.chunks), "mapped", h.mapped)
	return c
}

func (h *Heap) canMap(n uintptr) bool {
	if h.limit <= 0 {
		return true
	}
	return uintptr(h.mapped)+n <= uintptr(h.limit)
}

// classIndex maps a small request size to its size class.
func classIndex(size uintptr) int {
	if size <= MinClassSize {
		return 0
	}
	return bits.Len(uint(size-1)) - 4
}

func classSize(idx int) uintptr { return MinClassSize << idx }

// blockSize is the number of bytes actually reserved for a request.
func blockSize(size uintptr) uintptr {
	if size > MaxClassSize {
		return pageRound(size)
	}
	return classSize(classIndex(size))
}

// alignUp aligns the offset up to MinClassSize.
func alignUp(off uintptr) uintptr {
	const mask = MinClassSize - 1
	return (off + mask) &^ mask
}

func pageRound(n uintptr) uintptr {
	ps := uintptr(pageSize)
	return (n + ps - 1) &^ (ps - 1)
}
