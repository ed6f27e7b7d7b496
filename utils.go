package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// clampByte clamps an integer channel value to [0,255].
func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampFloat clamps v to [lo,hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampIndex clamps a sample index to [0,n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// parallelRows runs fn over [0,h) split into contiguous chunks, one per
// worker. Workers write disjoint output rows, so the result does not
// depend on scheduling order.
func parallelRows(h int, fn func(y0, y1 int)) {
	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		fn(0, h)
		return
	}

	chunk := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += chunk {
		y1 := y0 + chunk
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// readInput reads a file, transparently decompressing zstd-wrapped
// inputs (".zst" suffix).
func readInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return io.ReadAll(f)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// HumanFileSize formats a byte count with a decimal unit prefix.
func HumanFileSize(size int64) string {
	switch {
	case size < 1_000:
		return fmt.Sprintf("%d bytes", size)
	case size < 1_000_000:
		return fmt.Sprintf("%.2f KB", float64(size)/1_000)
	case size < 1_000_000_000:
		return fmt.Sprintf("%.2f MB", float64(size)/1_000_000)
	case size < 1_000_000_000_000:
		return fmt.Sprintf("%.2f GB", float64(size)/1_000_000_000)
	default:
		return fmt.Sprintf("%.2f TB", float64(size)/1_000_000_000_000)
	}
}
