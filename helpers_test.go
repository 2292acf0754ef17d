package mempool

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

var errOutOfMemory = errors.New("out of memory")

// limitProvider serves a fixed number of arenas and then fails.
type limitProvider struct {
	remaining  int
	short      bool // hand out one byte less than asked
	releaseErr error
	released   int
}

func (lp *limitProvider) Alloc(size int) ([]byte, error) {
	if lp.remaining <= 0 {
		return nil, errOutOfMemory
	}
	lp.remaining--
	if lp.short {
		return make([]byte, size-1), nil
	}
	return make([]byte, size), nil
}

func (lp *limitProvider) Release([]byte) error {
	lp.released++
	return lp.releaseErr
}

// recordingProvider remembers every arena it hands out and gets back.
type recordingProvider struct {
	allocated  []*byte
	released   []*byte
	releaseErr error
}

func (rp *recordingProvider) Alloc(size int) ([]byte, error) {
	b := make([]byte, size)
	rp.allocated = append(rp.allocated, unsafe.SliceData(b))
	return b, nil
}

func (rp *recordingProvider) Release(b []byte) error {
	rp.released = append(rp.released, unsafe.SliceData(b))
	return rp.releaseErr
}

// newTestPool builds a pool and checks it is released without leaks.
func newTestPool(t *testing.T, cfg Config) *Pool {
	t.Helper()
	p, err := NewPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if !p.released {
			require.NoError(t, p.Release())
		}
	})
	return p
}

// capacities returns every chunk's capacity in list order.
func capacities(p *Pool) []int {
	var caps []int
	for i := p.head; i != none; i = p.chunks[i].next {
		caps = append(caps, p.chunks[i].capacity)
	}
	return caps
}

// chunkOf returns the index of the chunk whose data starts at b.
func chunkOf(t *testing.T, p *Pool, b []byte) int {
	t.Helper()
	idx := p.findChunkHolding(unsafe.SliceData(b))
	require.NotEqual(t, none, idx, "block does not start at a chunk")
	return idx
}

// requireBalanced asserts the byte counters add up and the list is sound.
func requireBalanced(t *testing.T, p *Pool) {
	t.Helper()
	require.Equal(t, p.TotalSize(), p.UsedSize()+p.FreeSize(), "total != used + free")
	require.NoError(t, p.Validate())
}
