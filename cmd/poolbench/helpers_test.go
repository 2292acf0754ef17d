package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pavanmanishd/mempool"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbose = false
	quiet = false
	defaults := poolOptions{
		initial:   mempool.DefaultInitialSize,
		chunkSize: mempool.DefaultChunkSize,
		minGrowth: mempool.DefaultMinGrowthSize,
	}
	benchOpts, dumpOpts = defaults, defaults
	benchCount, benchArraySize, benchDump = 500000, 10000, ""
	dumpCount, dumpArraySize = 16, 10000
}
