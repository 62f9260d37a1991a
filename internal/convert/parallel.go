package convert

import (
	"runtime"
	"sync"
)

// mapLines runs fn for every index in [0, n) and returns the results in
// index order.
//
// With opts.Parallel the calls are spread over a worker pool; fn must then
// only read shared state. Progress, if set, is called from the collecting
// goroutine only.
func mapLines[T any](n int, opts Options, fn func(i int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}

	if !opts.Parallel {
		for i := 0; i < n; i++ {
			out[i] = fn(i)
			if opts.Progress != nil {
				opts.Progress(i+1, n)
			}
		}
		return out
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	type lineResult struct {
		index int
		value T
	}

	jobs := make(chan int, n)
	results := make(chan lineResult, n)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				results <- lineResult{index: index, value: fn(index)}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	done := 0
	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, n)
		}
		out[result.index] = result.value
	}
	return out
}
