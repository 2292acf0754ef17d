package mempool

import "fmt"

// Provider supplies the large arenas a Pool carves into chunks.
// Release receives exactly the slice returned by Alloc.
type Provider interface {
	Alloc(size int) ([]byte, error)
	Release(b []byte) error
}

// HeapProvider allocates arenas from the Go heap. Release is a no-op; the
// garbage collector reclaims an arena once the pool drops it.
type HeapProvider struct{}

// Alloc returns a zeroed arena of size bytes. Sizes the runtime refuses to
// allocate are reported as errors.
func (HeapProvider) Alloc(size int) (b []byte, err error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("heap arena of %d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

// Release implements Provider.
func (HeapProvider) Release([]byte) error { return nil }
