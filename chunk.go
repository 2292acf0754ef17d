package mempool

import "math"

// none marks the absence of a chunk index.
const none = -1

// chunk describes one chunkSize-sized slice of an arena.
//
// capacity is NOT the size of the chunk's own slice. It is the number of bytes
// from the chunk's start to the end of the whole tracked pool region, as if
// every arena were laid out back to back in list order. It is recomputed for
// the entire list after every growth episode (see Pool.recalcCapacities), so
// chunks near the tail report less than chunks near the head. Once a pool has
// grown more than once, the value can promise a run that continues into a
// different arena; Get checks the arena-local span before handing it out.
type chunk struct {
	data      []byte // view into the arena from this chunk's start to the arena end
	capacity  int
	used      int  // bytes claimed by a live block anchored here, 0 when free
	ownsArena bool // first chunk of a growth episode; the arena is released through it
	next      int
	arena     int
}

func newChunk() chunk {
	return chunk{next: none, arena: none}
}

// neededChunks returns the number of chunk units needed to hold size bytes.
func neededChunks(size, chunkSize int) int {
	if size <= 0 {
		return 0
	}
	return (size-1)/chunkSize + 1
}

// maxBlockSize returns the largest multiple of chunkSize that fits in an int.
// Larger sizes cannot be rounded.
func maxBlockSize(chunkSize int) int {
	return math.MaxInt / chunkSize * chunkSize
}

// bestBlockSize rounds size up to a multiple of chunkSize.
func bestBlockSize(size, chunkSize int) int {
	return neededChunks(size, chunkSize) * chunkSize
}
