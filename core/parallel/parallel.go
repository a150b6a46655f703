// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides [0, items) into contiguous chunks, one per CPU core,
// and runs fn on each chunk concurrently. It returns once every chunk is done.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN is Parallelize with an explicit worker count. A count below
// one means one worker per CPU core.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items // No need for more workers than items
	}
	if workers == 1 {
		fn(0, items)
		return
	}

	// Ceiling division so the last chunk absorbs the remainder
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over the whole range when
// cost is at or below threshold, and in parallel otherwise. cost is the
// caller's estimate of the work (for example rows*columns), items is the
// number of independent units that may be split.
func ParallelizeWithThreshold(items, cost, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if threshold < 0 || cost <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
