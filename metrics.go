package heapcore

// SizeInUse returns the bytes reserved by live blocks, including the
// rounding up to size classes and pages.
func (h *Heap) SizeInUse() int {
	return h.inUse
}

// NumChunks returns the number of chunks currently mapped.
func (h *Heap) NumChunks() int {
	return len(h.chunks)
}

// NumSpans returns the number of large spans currently mapped.
func (h *Heap) NumSpans() int {
	return len(h.spans)
}

// LiveBlocks returns the number of blocks allocated and not yet freed.
func (h *Heap) LiveBlocks() int {
	return h.live
}

// Capacity returns the total bytes mapped for chunks and spans.
func (h *Heap) Capacity() int {
	return h.mapped
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if nothing is mapped.
func (h *Heap) Utilization() float64 {
	if h.mapped == 0 {
		return 0
	}
	return float64(h.inUse) / float64(h.mapped)
}

// ChunkSize returns the configured chunk size.
func (h *Heap) ChunkSize() int {
	return h.chunkSize
}

// Metrics returns a snapshot of heap statistics.
func (h *Heap) Metrics() HeapMetrics {
	return HeapMetrics{
		SizeInUse:   h.SizeInUse(),
		Capacity:    h.Capacity(),
		NumChunks:   h.NumChunks(),
		NumSpans:    h.NumSpans(),
		LiveBlocks:  h.LiveBlocks(),
		ChunkSize:   h.ChunkSize(),
		Utilization: h.Utilization(),
	}
}

// HeapMetrics contains statistical information about a heap.
type HeapMetrics struct {
	SizeInUse   int     // Bytes reserved by live blocks
	Capacity    int     // Bytes mapped from the OS
	NumChunks   int     // Chunks serving small blocks
	NumSpans    int     // Dedicated large spans
	LiveBlocks  int     // Blocks not yet freed
	ChunkSize   int     // Configured chunk size
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)
}

// Metrics goroutine-safely returns a snapshot of heap statistics.
func (s *SafeHeap) Metrics() HeapMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}

// SizeInUse goroutine-safely returns the bytes reserved by live blocks.
func (s *SafeHeap) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.SizeInUse()
}

// LiveBlocks goroutine-safely returns the number of live blocks.
func (s *SafeHeap) LiveBlocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.LiveBlocks()
}
