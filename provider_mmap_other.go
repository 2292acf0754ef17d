//go:build !(linux || darwin || freebsd)

package mempool

// MmapProvider falls back to the Go heap where anonymous mmap is not wired up.
type MmapProvider struct{}

// Alloc returns a zeroed heap arena of size bytes.
func (MmapProvider) Alloc(size int) ([]byte, error) {
	return HeapProvider{}.Alloc(size)
}

// Release implements Provider.
func (MmapProvider) Release([]byte) error { return nil }
