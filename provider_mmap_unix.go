//go:build linux || darwin || freebsd

package mempool

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProvider maps anonymous private memory for every arena, keeping pool
// memory outside the Go heap.
type MmapProvider struct{}

// Alloc maps size bytes of zeroed read/write memory.
func (MmapProvider) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

// Release unmaps an arena returned by Alloc.
func (MmapProvider) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// already unmapped
		return nil
	}
	return err
}
