package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dumpCount     int
	dumpArraySize int
	dumpOpts      poolOptions
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpCount, "count", 16, "Blocks held live while dumping")
	cmd.Flags().IntVar(&dumpArraySize, "array-size", 10000, "Size of each block in bytes")
	addPoolFlags(cmd.Flags(), &dumpOpts)
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Write a raw dump of a populated pool",
		Long: `The dump command fills a pool with --count blocks of --array-size bytes,
each block stamped with its index, and writes the raw chunk contents to path.
The file holds chunk-size bytes per chunk in list order, with no header.

Example:
  poolbench dump pool.bin
  poolbench dump pool.bin --count 4 --array-size 300 --chunk-size 64 --debug-fill`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) (err error) {
	path := args[0]
	if dumpCount < 0 || dumpArraySize <= 0 {
		return fmt.Errorf("invalid sample shape: count %d, array size %d", dumpCount, dumpArraySize)
	}

	p, err := dumpOpts.newPool(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer func() {
		if rerr := p.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("failed to release pool: %w", rerr)
		}
	}()

	blocks := make([][]byte, 0, dumpCount)
	defer func() {
		var errs []error
		for _, b := range blocks {
			errs = append(errs, p.Free(b, dumpArraySize))
		}
		if ferr := errors.Join(errs...); ferr != nil && err == nil {
			err = fmt.Errorf("failed to free samples: %w", ferr)
		}
	}()

	for i := 0; i < dumpCount; i++ {
		b, err := p.Get(dumpArraySize)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		for j := range b {
			b[j] = byte(i)
		}
		blocks = append(blocks, b)
	}
	printVerbose("Pool: %s\n", p.Stats())

	if err := p.Validate(); err != nil {
		return fmt.Errorf("pool failed validation: %w", err)
	}
	return writeDump(p, path)
}
