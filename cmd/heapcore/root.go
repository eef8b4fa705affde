package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/fault"
)

var (
	// Global flags
	verbose   bool
	jsonOut   bool
	chunkSize int
	heapLimit int
)

var rootCmd = &cobra.Command{
	Use:   "heapcore",
	Short: "Exercise the heapcore allocator and string views",
	Long: `heapcore places its arguments on a private heap and runs view,
parsing and encoding operations over them. Fatal faults raised by the
library are reported as errors.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log heap chunk activity to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk-size", heapcore.DefaultChunkSize, "Heap chunk size in bytes")
	rootCmd.PersistentFlags().IntVar(&heapLimit, "limit", 0, "Cap on mapped heap bytes (0 for none)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger returns the CLI logger. Debug records only appear with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("component", "heapcore")
}

// newHeap builds a heap from the global flags.
func newHeap() *heapcore.Heap {
	return heapcore.NewHeap(
		heapcore.WithChunkSize(chunkSize),
		heapcore.WithLimit(heapLimit),
		heapcore.WithLogger(newLogger()),
	)
}

// withText copies arg onto a fresh heap and runs fn over it. Faults raised
// while fn runs are returned as errors.
func withText(arg string, fn func(h *heapcore.Heap, text *bytebuf.Buffer) error) error {
	h := newHeap()
	defer h.Release()

	var err error
	if ferr := fault.Catch(func() {
		text := bytebuf.FromBytes(h, []byte(arg))
		defer text.Free()
		err = fn(h, text)
	}); ferr != nil {
		return ferr
	}
	return err
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
