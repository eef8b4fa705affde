package main

import (
	"fmt"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/fault"
)

var (
	statsBlocks int
	statsSize   int
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsBlocks, "blocks", 1000, "Number of blocks to allocate")
	cmd.Flags().IntVar(&statsSize, "size", 64, "Size of each block in bytes")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Allocate a workload and show heap statistics",
		Long: `The stats command allocates --blocks blocks of --size bytes, frees
every other one, and reports the resulting heap metrics.

Example:
  heapcore stats --blocks 10000 --size 48
  heapcore stats --size 100000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if statsBlocks < 0 || statsSize <= 0 {
				return fmt.Errorf("need --blocks >= 0 and --size > 0")
			}
			h := newHeap()
			defer h.Release()

			var m heapcore.HeapMetrics
			if err := fault.Catch(func() { m = runWorkload(h, statsBlocks, uintptr(statsSize)) }); err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), m)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Live blocks:   %d\n", m.LiveBlocks)
			fmt.Fprintf(out, "Size in use:   %d bytes\n", m.SizeInUse)
			fmt.Fprintf(out, "Capacity:      %d bytes\n", m.Capacity)
			fmt.Fprintf(out, "Chunks:        %d (%d bytes each)\n", m.NumChunks, m.ChunkSize)
			fmt.Fprintf(out, "Spans:         %d\n", m.NumSpans)
			fmt.Fprintf(out, "Utilization:   %.1f%%\n", m.Utilization*100)
			return nil
		},
	}
}

// runWorkload allocates n blocks, frees the odd ones and snapshots the
// metrics before releasing the rest.
func runWorkload(h *heapcore.Heap, n int, size uintptr) heapcore.HeapMetrics {
	blocks := make([]unsafe.Pointer, n)
	for i := range blocks {
		blocks[i] = h.Allocate(size)
		if blocks[i] == nil {
			fault.Raise("stats", "heap exhausted after %d blocks", i)
		}
	}
	for i := 1; i < n; i += 2 {
		h.Deallocate(&blocks[i], size)
	}
	m := h.Metrics()
	for i := 0; i < n; i += 2 {
		h.Deallocate(&blocks[i], size)
	}
	return m
}
