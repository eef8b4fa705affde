package heapcore_test

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/sharedbox"
)

// BenchmarkSizeClasses allocates and frees batches across the class range
// and one large span, against make for comparison.
func BenchmarkSizeClasses(b *testing.B) {
	sizes := []uintptr{16, 64, 512, 4096, 1 << 16}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Heap_%dB", size), func(b *testing.B) {
			h := heapcore.NewHeap(heapcore.WithChunkSize(1 << 20))
			defer h.Release()
			ptrs := make([]unsafe.Pointer, 64)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				for j := range ptrs {
					ptrs[j] = h.Allocate(size)
				}
				for j := range ptrs {
					h.Deallocate(&ptrs[j], size)
				}
			}
		})

		b.Run(fmt.Sprintf("Builtin_%dB", size), func(b *testing.B) {
			objects := make([][]byte, 64)
			for i := 0; i < b.N; i++ {
				for j := range objects {
					objects[j] = make([]byte, size)
				}
			}
		})
	}
}

// BenchmarkConcurrency compares a shared SafeHeap with one Heap per goroutine.
func BenchmarkConcurrency(b *testing.B) {
	b.Run("SafeHeap_Parallel", func(b *testing.B) {
		s := heapcore.NewSafeHeap()
		defer s.Release()

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				p := s.Allocate(64)
				s.Deallocate(&p, 64)
			}
		})
	})

	b.Run("Heap_PerGoroutine", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			h := heapcore.NewHeap()
			defer h.Release()
			for pb.Next() {
				p := h.Allocate(64)
				h.Deallocate(&p, 64)
			}
		})
	})
}

func BenchmarkBufferPush(b *testing.B) {
	h := heapcore.NewHeap(heapcore.WithChunkSize(1 << 20))
	defer h.Release()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf := bytebuf.New(h)
		for j := 0; j < 1024; j++ {
			buf.Push(byte(j))
		}
		buf.Free()
	}
}

func BenchmarkSharedShare(b *testing.B) {
	h := heapcore.NewHeap()
	defer h.Release()
	s := sharedbox.NewZeroed(h, 64)
	defer s.Free()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c := s.Share()
		c.Free()
	}
}
