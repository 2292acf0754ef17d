package mempool

import (
	"io"
	"log/slog"
)

const (
	// DefaultInitialSize is the number of bytes a new pool requests up front.
	DefaultInitialSize = 1000

	// DefaultChunkSize is the allocation granularity. Smaller chunks waste
	// less memory, larger chunks make the free-space search faster.
	DefaultChunkSize = 128

	// DefaultMinGrowthSize is the smallest arena requested when the pool grows.
	DefaultMinGrowthSize = DefaultChunkSize * 2
)

// Config holds the construction parameters of a Pool.
// Zero or negative sizes select the defaults.
type Config struct {
	// InitialSize is the size of the first arena, in bytes.
	InitialSize int

	// ChunkSize is the granularity every block size is rounded to.
	// Typed allocations need it to be a multiple of the type's alignment.
	ChunkSize int

	// MinGrowthSize is the lower bound of every later arena request. It
	// defaults to twice the chunk size.
	MinGrowthSize int

	// DebugFill stamps new arenas with FreshFill and released blocks with
	// FreedFill. Useful when chasing use-after-free, at a runtime cost.
	DebugFill bool

	// Provider supplies arenas. Defaults to HeapProvider.
	Provider Provider

	// Logger receives growth and teardown events. Defaults to discarding.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.InitialSize <= 0 {
		c.InitialSize = DefaultInitialSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.MinGrowthSize <= 0 {
		c.MinGrowthSize = c.ChunkSize * 2
	}
	if c.Provider == nil {
		c.Provider = HeapProvider{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
