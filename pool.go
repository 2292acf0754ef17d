package mempool

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"unsafe"
)

const (
	// FreshFill is stamped over new arenas when DebugFill is set.
	FreshFill = 0xFF

	// FreedFill is stamped over released blocks when DebugFill is set.
	FreedFill = 0xAA
)

// Pool hands out blocks carved from large arenas in units of a fixed chunk
// size. Not goroutine-safe; use SafePool for concurrent access.
type Pool struct {
	chunks []chunk
	arenas [][]byte

	head   int
	tail   int
	cursor int

	chunkSize int
	minGrowth int
	fill      bool

	total   int
	used    int
	free    int
	objects int
	rejects int

	provider Provider
	log      *slog.Logger
	released bool
}

// NewPool creates a pool and allocates its initial arena.
func NewPool(cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()
	if limit := maxBlockSize(cfg.ChunkSize); cfg.MinGrowthSize > limit {
		return nil, fmt.Errorf("%w: minimum growth %d exceeds the largest arena of %d", ErrInvalidSize, cfg.MinGrowthSize, limit)
	}
	p := &Pool{
		head:      none,
		tail:      none,
		cursor:    none,
		chunkSize: cfg.ChunkSize,
		minGrowth: cfg.MinGrowthSize,
		fill:      cfg.DebugFill,
		provider:  cfg.Provider,
		log:       cfg.Logger,
	}
	if err := p.grow(cfg.InitialSize); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a block of at least size bytes. The returned slice has length
// size and capacity size rounded up to a multiple of the chunk size. Free
// must later be called with the same size.
func (p *Pool) Get(size int) ([]byte, error) {
	if p.released {
		return nil, ErrReleased
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if limit := maxBlockSize(p.chunkSize); size > limit {
		return nil, fmt.Errorf("%w: %d exceeds the largest block of %d", ErrInvalidSize, size, limit)
	}

	best := bestBlockSize(size, p.chunkSize)
	idx, err := p.findChunk(best)
	if err != nil {
		return nil, err
	}
	for idx == none {
		// Miss: the pool is too small, get more memory and search again.
		if err := p.grow(max(best, bestBlockSize(p.minGrowth, p.chunkSize))); err != nil {
			return nil, err
		}
		if idx, err = p.findChunk(best); err != nil {
			return nil, err
		}
	}
	c := &p.chunks[idx]
	c.used = best
	p.used += best
	p.free -= best
	p.objects++
	assertf(p.total == p.used+p.free, "total %d != used %d + free %d", p.total, p.used, p.free)
	return c.data[:size:best], nil
}

// Free releases a block obtained from Get. size must be the size passed to
// Get.
func (p *Pool) Free(b []byte, size int) error {
	if p.released {
		return ErrReleased
	}
	if cap(b) == 0 {
		return fmt.Errorf("%w: empty block", ErrForeignPointer)
	}
	ptr := unsafe.SliceData(b)
	idx := p.findChunkHolding(ptr)
	if idx == none {
		return fmt.Errorf("%w: %p", ErrForeignPointer, ptr)
	}
	c := &p.chunks[idx]
	if c.used == 0 {
		return fmt.Errorf("%w: %p", ErrNotAllocated, ptr)
	}
	if bestBlockSize(size, p.chunkSize) != c.used {
		return fmt.Errorf("%w: freeing %d bytes of a %d byte block", ErrSizeMismatch, size, c.used)
	}
	if p.objects == 0 {
		return ErrFreeUnderflow
	}
	if err := p.freeChunks(idx); err != nil {
		return err
	}
	p.objects--
	return nil
}

// Release hands every arena back to the provider and makes the pool
// unusable. It reports ErrLeak if blocks were still live.
func (p *Pool) Release() error {
	if p.released {
		return ErrReleased
	}
	var errs []error
	for i := p.head; i != none; i = p.chunks[i].next {
		c := &p.chunks[i]
		if !c.ownsArena {
			continue
		}
		if err := p.provider.Release(p.arenas[c.arena]); err != nil {
			p.log.Error("release arena", "arena", c.arena, "err", err)
			errs = append(errs, fmt.Errorf("release arena %d: %w", c.arena, err))
		}
	}
	if p.objects != 0 {
		p.log.Warn("pool released with live blocks", "objects", p.objects, "used", p.used)
		errs = append(errs, fmt.Errorf("%w: %d blocks (%d bytes) not freed", ErrLeak, p.objects, p.used))
	}
	p.log.Debug("pool released", "arenas", len(p.arenas), "total", p.total)

	p.chunks, p.arenas = nil, nil
	p.head, p.tail, p.cursor = none, none, none
	p.total, p.used, p.free, p.objects, p.rejects = 0, 0, 0, 0, 0
	p.released = true
	return errors.Join(errs...)
}

// grow requests an arena of at least size bytes and appends its chunks to
// the list.
func (p *Pool) grow(size int) error {
	n := neededChunks(size, p.chunkSize)
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if limit := maxBlockSize(p.chunkSize); size > limit {
		return fmt.Errorf("%w: %d bytes exceeds the largest arena of %d", ErrGrowFailed, size, limit)
	}
	blockSize := n * p.chunkSize
	if blockSize > math.MaxInt-p.total {
		return fmt.Errorf("%w: %d more bytes overflow the pool total of %d", ErrGrowFailed, blockSize, p.total)
	}

	buf, err := p.provider.Alloc(blockSize)
	if err != nil {
		return fmt.Errorf("%w: %d bytes: %w", ErrGrowFailed, blockSize, err)
	}
	if len(buf) < blockSize {
		return errors.Join(
			fmt.Errorf("%w: provider returned %d of %d bytes", ErrGrowFailed, len(buf), blockSize),
			p.provider.Release(buf))
	}
	buf = buf[:blockSize]

	p.total += blockSize
	p.free += blockSize
	if p.fill {
		fillBytes(buf, FreshFill)
	}

	ai := len(p.arenas)
	p.arenas = append(p.arenas, buf)
	p.chunks = slices.Grow(p.chunks, n)
	first := len(p.chunks)
	for i := 0; i < n; i++ {
		c := newChunk()
		c.data = buf[i*p.chunkSize:]
		c.arena = ai
		c.ownsArena = i == 0
		p.chunks = append(p.chunks, c)
		p.link(first + i)
	}
	p.recalcCapacities()

	p.log.Debug("pool grew", "arena", ai, "bytes", blockSize, "chunks", n, "total", p.total)
	assertf(p.total == p.used+p.free, "total %d != used %d + free %d", p.total, p.used, p.free)
	return nil
}

// link appends chunk i to the tail of the list.
func (p *Pool) link(i int) {
	if p.head == none {
		p.head, p.tail, p.cursor = i, i, i
		return
	}
	p.chunks[p.tail].next = i
	p.tail = i
}

// recalcCapacities sets every chunk's capacity to the distance from its
// start to the end of the whole pool, by list position.
func (p *Pool) recalcCapacities() {
	pos := 0
	for i := p.head; i != none; i = p.chunks[i].next {
		p.chunks[i].capacity = p.total - pos*p.chunkSize
		pos++
	}
}

// findChunk scans from the cursor for a free chunk whose capacity holds size
// bytes. A candidate whose run leaves its arena or reaches a live block is
// counted as a reject and passed over. It returns none when a full pass finds
// nothing.
func (p *Pool) findChunk(size int) (int, error) {
	i := p.cursor
	if i == none {
		return none, nil
	}
	for range len(p.chunks) {
		c := &p.chunks[i]
		if c.capacity >= size && c.used == 0 {
			err := p.checkSpan(i, size)
			if err == nil {
				p.cursor = i
				return i, nil
			}
			if !errors.Is(err, ErrSpanCrossesArena) && !errors.Is(err, ErrSpanInUse) {
				return none, err
			}
			p.rejects++
			p.log.Debug("chunk capacity overstates its free span", "chunk", i, "err", err)
		}
		// jump over the live block anchored here
		skip := max(1, neededChunks(c.used, p.chunkSize))
		next, err := p.skipChunks(i, skip)
		if err != nil {
			return none, err
		}
		i = next
	}
	return none, nil
}

// skipChunks walks n links forward from i. Stepping off the tail wraps to
// the head; running further past the tail means a block claims chunks that
// do not exist.
func (p *Pool) skipChunks(i, n int) (int, error) {
	for ; n > 0; n-- {
		next := p.chunks[i].next
		if next == none {
			if n == 1 {
				return p.head, nil
			}
			return none, fmt.Errorf("%w: skipping %d chunks past the tail", ErrCorrupt, n-1)
		}
		i = next
	}
	return i, nil
}

// checkSpan verifies that the size bytes promised by the anchor's capacity
// are one run of free chunks inside the anchor's own arena.
func (p *Pool) checkSpan(idx, size int) error {
	anchor := &p.chunks[idx]
	if size > len(anchor.data) {
		return fmt.Errorf("%w: chunk %d has capacity %d but only %d bytes left in arena %d",
			ErrSpanCrossesArena, idx, anchor.capacity, len(anchor.data), anchor.arena)
	}
	i := idx
	for range neededChunks(size, p.chunkSize) {
		if i == none {
			return fmt.Errorf("%w: span of chunk %d runs past the tail", ErrCorrupt, idx)
		}
		if p.chunks[i].used != 0 {
			return fmt.Errorf("%w: span of chunk %d reaches live block at chunk %d", ErrSpanInUse, idx, i)
		}
		i = p.chunks[i].next
	}
	return nil
}

// findChunkHolding returns the chunk whose data starts at ptr.
func (p *Pool) findChunkHolding(ptr *byte) int {
	for i := p.head; i != none; i = p.chunks[i].next {
		if unsafe.SliceData(p.chunks[i].data) == ptr {
			return i
		}
	}
	return none
}

// freeChunks clears the block anchored at idx, one chunk unit at a time.
func (p *Pool) freeChunks(idx int) error {
	n := neededChunks(p.chunks[idx].used, p.chunkSize)
	i := idx
	for range n {
		if i == none {
			return fmt.Errorf("%w: block at chunk %d runs past the tail", ErrCorrupt, idx)
		}
		c := &p.chunks[i]
		if p.fill {
			fillBytes(c.data[:p.chunkSize], FreedFill)
		}
		c.used = 0
		p.used -= p.chunkSize
		p.free += p.chunkSize
		i = c.next
	}
	assertf(p.total == p.used+p.free, "total %d != used %d + free %d", p.total, p.used, p.free)
	return nil
}

func fillBytes(b []byte, v byte) {
	if len(b) == 0 {
		return
	}
	b[0] = v
	for n := 1; n < len(b); n *= 2 {
		copy(b[n:], b[:n])
	}
}
