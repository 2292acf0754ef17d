package mempool

import "errors"

var (
	// ErrInvalidSize indicates a request for zero or a negative number of bytes.
	ErrInvalidSize = errors.New("mempool: size must be greater than zero")

	// ErrGrowFailed indicates that the arena provider could not supply a new arena.
	ErrGrowFailed = errors.New("mempool: grow failed")

	// ErrForeignPointer indicates a block that does not start at any chunk of this pool.
	ErrForeignPointer = errors.New("mempool: pointer not in pool")

	// ErrNotAllocated indicates a block whose chunk is not currently claimed,
	// typically a double free or an interior pointer of a live block.
	ErrNotAllocated = errors.New("mempool: block not allocated")

	// ErrSizeMismatch indicates Free was called with a size that rounds to a
	// different block size than the one used by Get.
	ErrSizeMismatch = errors.New("mempool: size does not match allocation")

	// ErrFreeUnderflow indicates more releases than allocations.
	ErrFreeUnderflow = errors.New("mempool: more frees than allocations")

	// ErrSpanCrossesArena indicates that a chunk's capacity promised a run
	// that continues past the end of its own arena.
	ErrSpanCrossesArena = errors.New("mempool: span crosses arena boundary")

	// ErrSpanInUse indicates that a free chunk's run overlaps a live block.
	ErrSpanInUse = errors.New("mempool: span overlaps live block")

	// ErrCorrupt indicates broken chunk-list bookkeeping.
	ErrCorrupt = errors.New("mempool: corrupt chunk list")

	// ErrReleased indicates use of a pool after Release.
	ErrReleased = errors.New("mempool: use after Release()")

	// ErrLeak indicates that blocks were still live when the pool was released.
	ErrLeak = errors.New("mempool: memory leak")

	// ErrEmptyDump indicates that a dump wrote no chunks.
	ErrEmptyDump = errors.New("mempool: nothing to dump")

	// ErrMisaligned indicates pool memory that cannot hold the requested type.
	ErrMisaligned = errors.New("mempool: misaligned block")
)
