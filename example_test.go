package mempool

import (
	"errors"
	"fmt"
	"sync"
)

// Example demonstrates basic pool usage
func Example() {
	// Create a pool with 128 byte chunks
	p, err := NewPool(Config{ChunkSize: 128})
	if err != nil {
		panic(err)
	}

	// Get raw bytes, rounded up to whole chunks
	buf, _ := p.Get(100)
	fmt.Printf("Block: len %d, cap %d\n", len(buf), cap(buf))

	// Allocate a typed value (zeroed)
	ptr, _ := Alloc[int](p)
	*ptr = 42
	fmt.Printf("Allocated int with value: %d\n", *ptr)

	// Allocate a slice
	slice, _ := AllocSlice[int](p, 5)
	for i := range slice {
		slice[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	// Check memory usage
	fmt.Printf("Memory in use: %d bytes\n", p.UsedSize())
	fmt.Printf("Utilization: %.2f%%\n", p.Utilization()*100)

	// Every block goes back with the size it was requested with
	_ = p.Free(buf, 100)
	_ = FreeObject(p, ptr)
	_ = FreeSlice(p, slice)
	fmt.Printf("After free, memory in use: %d bytes\n", p.UsedSize())

	fmt.Println("Release:", p.Release())

	// Output:
	// Block: len 100, cap 128
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 384 bytes
	// Utilization: 37.50%
	// After free, memory in use: 0 bytes
	// Release: <nil>
}

// ExamplePool_Stats shows the pool growing when its chunks run out
func ExamplePool_Stats() {
	p, _ := NewPool(Config{InitialSize: 256, ChunkSize: 128, MinGrowthSize: 256})

	var blocks [][]byte
	for i := 0; i < 3; i++ {
		b, _ := p.Get(100)
		blocks = append(blocks, b)
	}
	fmt.Println(p.Stats())

	for _, b := range blocks {
		_ = p.Free(b, 100)
	}
	fmt.Println(p.Stats())
	_ = p.Release()

	// Output:
	// total=512 B used=384 B free=128 B chunks=4 arenas=2 objects=3 chunk=128 B rejects=0 util=75.00%
	// total=512 B used=0 B free=512 B chunks=4 arenas=2 objects=0 chunk=128 B rejects=0 util=0.00%
}

// ExamplePool_Release shows leak reporting
func ExamplePool_Release() {
	p, _ := NewPool(Config{})
	_, _ = p.Get(64)

	err := p.Release()
	fmt.Println(errors.Is(err, ErrLeak))

	_, err = p.Get(64)
	fmt.Println(err)

	// Output:
	// true
	// mempool: use after Release()
}

// ExampleSafePool demonstrates thread-safe pool usage
func ExampleSafePool() {
	s, _ := NewSafePool(Config{InitialSize: 4096})
	defer s.Release()

	var wg sync.WaitGroup
	const numWorkers = 3

	// Launch concurrent workers
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			// Each worker takes and returns some memory
			buf, err := s.Get(100 * (id + 1))
			if err != nil {
				return
			}
			_ = s.Free(buf, len(buf))
		}(i)
	}

	wg.Wait()
	fmt.Printf("Live objects: %d\n", s.LiveObjects())
	fmt.Printf("Memory in use: %d bytes\n", s.UsedSize())

	// Output:
	// Live objects: 0
	// Memory in use: 0 bytes
}

// ExampleAllocator demonstrates switching between the pool and the heap
func ExampleAllocator() {
	type point struct{ X, Y int64 }

	sum := func(a Allocator) int64 {
		pts, err := AllocSlice[point](a, 4)
		if err != nil {
			return -1
		}
		defer FreeSlice(a, pts)

		var total int64
		for i := range pts {
			pts[i] = point{int64(i), int64(i * i)}
			total += pts[i].X + pts[i].Y
		}
		return total
	}

	p, _ := NewPool(Config{})
	defer p.Release()

	fmt.Println(sum(p), sum(HeapAllocator{}))

	// Output:
	// 20 20
}
