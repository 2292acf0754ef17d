package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		wantErr     bool
		wantContain []string
	}{
		{
			name:  "heap arenas",
			setup: func() {},
			wantContain: []string{
				"Running 200 round trips per loop",
				"Result for pool (array test, 9.8 KiB)",
				"Result for heap (array test, 9.8 KiB)",
				"Result for pool (object test,",
				"Result for heap (object test,",
				"objects=0",
			},
		},
		{
			name:        "mmap arenas with fill",
			setup:       func() { benchOpts.mmap, benchOpts.debugFill = true, true },
			wantContain: []string{"Result for pool (array test", "objects=0"},
		},
		{
			name:        "small chunks",
			setup:       func() { benchOpts.chunkSize, benchArraySize = 16, 100 },
			wantContain: []string{"Result for pool (array test, 100 B)", "chunk=16 B"},
		},
		{
			name:    "zero count",
			setup:   func() { benchCount = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			benchCount = 200
			tt.setup()

			output, err := captureOutput(t, func() error {
				return runBench(nil)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runBench() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestBenchWritesDump(t *testing.T) {
	resetFlags()
	benchCount = 10
	benchArraySize = 300
	benchOpts.initial, benchOpts.chunkSize = 1024, 128
	benchDump = filepath.Join(t.TempDir(), "pool.bin")

	output, err := captureOutput(t, func() error {
		return runBench(nil)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Wrote ", benchDump})

	info, err := os.Stat(benchDump)
	require.NoError(t, err)
	assert.Zero(t, info.Size()%128)
	assert.GreaterOrEqual(t, info.Size(), int64(1024))
}

func TestQuietBench(t *testing.T) {
	resetFlags()
	benchCount = 10
	quiet = true

	output, err := captureOutput(t, func() error {
		return runBench(nil)
	})
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestVersionCommand(t *testing.T) {
	output, err := captureOutput(t, func() error {
		versionCmd.Run(versionCmd, nil)
		return nil
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"poolbench dev", "commit: none"})
}
