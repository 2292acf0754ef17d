package mempool

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// TotalSize returns the number of bytes obtained from the provider.
func (p *Pool) TotalSize() int { return p.total }

// UsedSize returns the number of bytes claimed by live blocks, after rounding.
func (p *Pool) UsedSize() int { return p.used }

// FreeSize returns TotalSize minus UsedSize.
func (p *Pool) FreeSize() int { return p.free }

// NumChunks returns the number of chunk records in the pool.
func (p *Pool) NumChunks() int { return len(p.chunks) }

// NumArenas returns the number of arenas obtained from the provider.
func (p *Pool) NumArenas() int { return len(p.arenas) }

// LiveObjects returns the number of Get calls not yet matched by Free.
func (p *Pool) LiveObjects() int { return p.objects }

// ChunkSize returns the allocation granularity.
func (p *Pool) ChunkSize() int { return p.chunkSize }

// MinGrowthSize returns the smallest arena requested on growth.
func (p *Pool) MinGrowthSize() int { return p.minGrowth }

// SpanRejects returns how many search candidates were passed over because
// their capacity promised a run that left the chunk's arena or reached a live
// block.
func (p *Pool) SpanRejects() int { return p.rejects }

// Utilization returns the ratio of used to total bytes (0.0 to 1.0).
func (p *Pool) Utilization() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.used) / float64(p.total)
}

// Stats returns a snapshot of pool statistics.
func (p *Pool) Stats() Stats {
	return Stats{
		TotalSize:     p.total,
		UsedSize:      p.used,
		FreeSize:      p.free,
		NumChunks:     len(p.chunks),
		NumArenas:     len(p.arenas),
		LiveObjects:   p.objects,
		ChunkSize:     p.chunkSize,
		MinGrowthSize: p.minGrowth,
		SpanRejects:   p.rejects,
		Utilization:   p.Utilization(),
	}
}

// Stats contains statistical information about a pool.
type Stats struct {
	TotalSize     int     // Bytes obtained from the provider
	UsedSize      int     // Bytes claimed by live blocks
	FreeSize      int     // Bytes available
	NumChunks     int     // Chunk records
	NumArenas     int     // Provider allocations
	LiveObjects   int     // Outstanding Get calls
	ChunkSize     int     // Allocation granularity
	MinGrowthSize int     // Smallest growth request
	SpanRejects   int     // Search candidates whose capacity overstated their span
	Utilization   float64 // Ratio of used to total (0.0-1.0)
}

func (s Stats) String() string {
	return fmt.Sprintf("total=%s used=%s free=%s chunks=%d arenas=%d objects=%d chunk=%s rejects=%d util=%.2f%%",
		humanize.IBytes(uint64(s.TotalSize)),
		humanize.IBytes(uint64(s.UsedSize)),
		humanize.IBytes(uint64(s.FreeSize)),
		s.NumChunks, s.NumArenas, s.LiveObjects,
		humanize.IBytes(uint64(s.ChunkSize)),
		s.SpanRejects, s.Utilization*100)
}

// Thread-safe metrics for SafePool

// TotalSize thread-safely returns the number of bytes obtained from the provider.
func (s *SafePool) TotalSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.TotalSize()
}

// UsedSize thread-safely returns the number of bytes claimed by live blocks.
func (s *SafePool) UsedSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.UsedSize()
}

// FreeSize thread-safely returns the number of available bytes.
func (s *SafePool) FreeSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.FreeSize()
}

// NumChunks thread-safely returns the number of chunk records.
func (s *SafePool) NumChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.NumChunks()
}

// LiveObjects thread-safely returns the number of outstanding blocks.
func (s *SafePool) LiveObjects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.LiveObjects()
}

// ChunkSize returns the allocation granularity. It never changes, so no lock
// is taken.
func (s *SafePool) ChunkSize() int {
	return s.p.chunkSize
}

// MinGrowthSize returns the smallest arena requested on growth. Like the chunk
// size it is fixed at construction.
func (s *SafePool) MinGrowthSize() int {
	return s.p.minGrowth
}

// NumArenas thread-safely returns the number of provider arenas.
func (s *SafePool) NumArenas() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.NumArenas()
}

// SpanRejects thread-safely returns the number of rejected search candidates.
func (s *SafePool) SpanRejects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.SpanRejects()
}

// Utilization thread-safely returns the ratio of used to total bytes.
func (s *SafePool) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Utilization()
}

// Stats thread-safely returns a snapshot of pool statistics.
func (s *SafePool) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Stats()
}
