package mempool

// Allocator is the get/free contract shared by Pool, SafePool and
// HeapAllocator, so call sites can switch between the pool and the heap.
type Allocator interface {
	// Get returns a block of at least size bytes.
	Get(size int) ([]byte, error)

	// Free releases a block returned by Get. size must be the size that
	// was passed to Get.
	Free(b []byte, size int) error
}

var (
	_ Allocator = (*Pool)(nil)
	_ Allocator = (*SafePool)(nil)
	_ Allocator = HeapAllocator{}
)

// HeapAllocator serves every request with make and leaves reclamation to the
// garbage collector.
type HeapAllocator struct{}

// Get returns a zeroed block of size bytes.
func (HeapAllocator) Get(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return make([]byte, size), nil
}

// Free implements Allocator. It does nothing.
func (HeapAllocator) Free([]byte, int) error { return nil }
