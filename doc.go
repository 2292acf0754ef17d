// Package mempool implements a fixed-granularity pooled memory allocator.
//
// # Overview
//
// A Pool requests large arenas from a Provider and hands them out in units of
// a configurable chunk size. Every request is rounded up to a whole number of
// chunks, so releasing a block only needs to know how many chunks it spans.
// This is useful for workloads with many short-lived, variably-sized objects
// where a round trip to the general-purpose allocator per object is too
// expensive.
//
// # Basic Usage
//
//	p, err := mempool.NewPool(mempool.Config{ChunkSize: 128})
//	if err != nil {
//		return err
//	}
//	defer p.Release()
//
//	buf, err := p.Get(100) // len 100, cap 128
//	...
//	err = p.Free(buf, 100) // same size as Get
//
//	// Typed values (T must not contain Go pointers)
//	v, err := mempool.Alloc[MyStruct](p)
//	...
//	err = mempool.FreeObject(p, v)
//
// Pool, SafePool and HeapAllocator all implement Allocator, so call sites can
// switch between the pool and the Go heap.
//
// # Memory Layout
//
// Chunk records form a singly linked list over all arenas, in the order the
// arenas were obtained. Each chunk's capacity is the distance from its start
// to the end of the whole list, recomputed after every growth. A search starts
// at a cursor (the last chunk handed out), skips over live blocks and wraps
// around at the tail. When nothing fits, the pool grows by at least
// Config.MinGrowthSize bytes and searches again.
//
// Because capacity is measured to the end of the list rather than to the end
// of the chunk's own arena, a chunk near the end of an older arena can look
// large enough for a block that would run into the next arena. The search
// checks the arena-local run of every candidate and passes over the ones that
// fall short; Stats.SpanRejects counts them.
//
// # Thread Safety
//
// Pool is not thread-safe. For concurrent access, use SafePool.
//
// # Errors
//
// Misuse (freeing foreign or already freed blocks, size mismatches, leaks at
// Release) is reported with the sentinel errors of this package. Building with
// -tags debug additionally panics on broken internal invariants.
//
// # Debugging
//
// With Config.DebugFill set, new arenas are filled with FreshFill and freed
// blocks with FreedFill. DumpToFile writes the raw contents of every chunk to
// a file for offline inspection.
package mempool
