/*
DESCRIPTION
  parallel.go provides Rows, a helper that runs a per-row function on up
  to a given number of worker goroutines and joins them before returning.
  No module's Process calls it: every module's pixel kernel runs its row
  loop on a single goroutine.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import "sync"

// Rows runs fn(y) for every y in [0, height), using at most parallelism
// goroutines, and blocks until all rows are complete. parallelism <= 1
// runs serially in the calling goroutine. No module Process
// implementation calls it.
func Rows(height, parallelism int, fn func(y int)) {
	if height <= 0 {
		return
	}
	if parallelism <= 1 || height == 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	var wg sync.WaitGroup
	rowsCh := make(chan int, height)
	for y := 0; y < height; y++ {
		rowsCh <- y
	}
	close(rowsCh)

	workers := parallelism
	if workers > height {
		workers = height
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rowsCh {
				fn(y)
			}
		}()
	}
	wg.Wait()
}
