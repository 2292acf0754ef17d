package mempool

import (
	"io"
	"sync"
)

// SafePool is a mutex-protected wrapper around Pool for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type SafePool struct {
	mu sync.Mutex
	p  *Pool
}

// NewSafePool creates a new thread-safe pool.
func NewSafePool(cfg Config) (*SafePool, error) {
	p, err := NewPool(cfg)
	if err != nil {
		return nil, err
	}
	return &SafePool{p: p}, nil
}

// Get thread-safely returns a block of at least size bytes.
func (s *SafePool) Get(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Get(size)
}

// Free thread-safely releases a block obtained from Get.
func (s *SafePool) Free(b []byte, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Free(b, size)
}

// IsValidPointer thread-safely reports whether b starts at a chunk.
func (s *SafePool) IsValidPointer(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.IsValidPointer(b)
}

// WriteTo thread-safely writes the raw pool contents to w.
func (s *SafePool) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.WriteTo(w)
}

// DumpToFile thread-safely writes the raw pool contents to path.
func (s *SafePool) DumpToFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.DumpToFile(path)
}

// Validate thread-safely checks the pool's bookkeeping.
func (s *SafePool) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Validate()
}

// Release thread-safely returns all arenas and makes the pool unusable.
func (s *SafePool) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Release()
}
