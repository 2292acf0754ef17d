package main

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/mempool"
)

var (
	benchCount     int
	benchArraySize int
	benchDump      string
	benchOpts      poolOptions
)

// Keep heap allocations observable so the compiler cannot drop them.
var (
	heapSink   []byte
	objectSink *testObject
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchCount, "count", 500000, "Get/free round trips per loop")
	cmd.Flags().IntVar(&benchArraySize, "array-size", 10000, "Size of the raw array requests in bytes")
	cmd.Flags().StringVar(&benchDump, "dump", "", "Write a raw pool dump to this path afterwards")
	addPoolFlags(cmd.Flags(), &benchOpts)
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare pool and heap allocation speed",
		Long: `The bench command times get/free round trips of raw arrays and of a
fixed-size object, once on a pool and once on the Go heap.

Example:
  poolbench bench
  poolbench bench --count 100000 --array-size 4096 --chunk-size 256
  poolbench bench --mmap --dump pool.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(args)
		},
	}
	return cmd
}

// testObject is the fixed-size record used by the object loops. It holds no
// Go pointers so it can live in pool memory.
type testObject struct {
	greeting [25]byte
	big      [10000]byte
	text     [32]byte
	count    int32
	f32      float32
	f64      float64
}

func (o *testObject) init() {
	copy(o.greeting[:], "Hello")
	copy(o.text[:], "This is a small Test-String")
	o.count = 12345
	o.f32 = 23456.7890
	o.f64 = 6789.012345
}

func runBench(args []string) (err error) {
	if benchCount <= 0 || benchArraySize <= 0 {
		return fmt.Errorf("count and array size must be positive, got %d and %d", benchCount, benchArraySize)
	}

	p, err := benchOpts.newPool(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer func() {
		if rerr := p.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("failed to release pool: %w", rerr)
		}
	}()

	printInfo("Running %s round trips per loop\n", humanize.Comma(int64(benchCount)))

	arraySize := humanize.IBytes(uint64(benchArraySize))
	d, err := timeLoop(benchCount, func() error {
		b, err := p.Get(benchArraySize)
		if err != nil {
			return err
		}
		return p.Free(b, benchArraySize)
	})
	if err != nil {
		return fmt.Errorf("pool array test: %w", err)
	}
	printInfo("Result for pool (array test, %s): %v\n", arraySize, d)

	d, _ = timeLoop(benchCount, func() error {
		heapSink = make([]byte, benchArraySize)
		return nil
	})
	printInfo("Result for heap (array test, %s): %v\n", arraySize, d)

	objectSize := humanize.IBytes(uint64(unsafe.Sizeof(testObject{})))
	d, err = timeLoop(benchCount, func() error {
		o, err := mempool.Alloc[testObject](p)
		if err != nil {
			return err
		}
		o.init()
		return mempool.FreeObject(p, o)
	})
	if err != nil {
		return fmt.Errorf("pool object test: %w", err)
	}
	printInfo("Result for pool (object test, %s): %v\n", objectSize, d)

	d, _ = timeLoop(benchCount, func() error {
		o := new(testObject)
		o.init()
		objectSink = o
		return nil
	})
	printInfo("Result for heap (object test, %s): %v\n", objectSize, d)

	printInfo("Pool: %s\n", p.Stats())

	if benchDump != "" {
		if err := writeDump(p, benchDump); err != nil {
			return err
		}
	}
	return nil
}

// timeLoop runs fn n times and reports the elapsed time. It stops at the
// first error.
func timeLoop(n int, fn func() error) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := fn(); err != nil {
			return time.Since(start), fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	return time.Since(start), nil
}

func writeDump(p *mempool.Pool, path string) error {
	printVerbose("Writing pool dump: %s\n", path)
	if err := p.DumpToFile(path); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	printInfo("Wrote %s (%d chunks) to %s\n",
		humanize.IBytes(uint64(p.NumChunks()*p.ChunkSize())), p.NumChunks(), path)
	return nil
}
