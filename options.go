package heapcore

import (
	"log/slog"
	"os"
)

// Option configures a Heap.
type Option func(*config)

type config struct {
	chunkSize int
	limit     int
	logger    *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithChunkSize sets the size of the chunks small blocks are carved from.
// If n <= 0, DefaultChunkSize is used.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		c.chunkSize = n
	}
}

// WithLimit caps the total bytes the heap may map. Requests beyond it fail
// as if the system were out of memory. n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

// WithLogger sets the logger used for chunk and span lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// envLogger returns a stderr debug logger when HEAPCORE_LOG_HEAP is set.
func envLogger() *slog.Logger {
	if os.Getenv("HEAPCORE_LOG_HEAP") == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("component", "heapcore")
}
