package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"
)

// Batch processes payloads in parallel and returns results in input
// order, each carrying its index as the result ID. workers <= 0
// defaults to runtime.NumCPU().
func Batch(ctx context.Context, processor Processor, payloads [][]byte, workers int) *BatchResult {
	if len(payloads) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Parallelism is not worth the setup for tiny batches
	if len(payloads) <= 2 || workers == 1 {
		return batchSequential(ctx, processor, payloads)
	}
	return batchParallel(ctx, processor, payloads, workers)
}

func batchSequential(ctx context.Context, processor Processor, payloads [][]byte) *BatchResult {
	br := &BatchResult{
		Results:   make([]*JobResult, 0, len(payloads)),
		TotalJobs: len(payloads),
	}

	for i, payload := range payloads {
		if ctx.Err() != nil {
			break
		}
		result := processor.Validate(ctx, payload)
		br.Results = append(br.Results, &JobResult{
			ID:     strconv.Itoa(i),
			Result: result,
		})
	}

	br.CompletedJobs = len(br.Results)
	return br
}

func batchParallel(ctx context.Context, processor Processor, payloads [][]byte, workers int) *BatchResult {
	if workers > len(payloads) {
		workers = len(payloads)
	}

	jobs := make(chan int, len(payloads))
	results := make([]*JobResult, len(payloads))

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				result := processor.Validate(ctx, payloads[idx])
				results[idx] = &JobResult{
					ID:     strconv.Itoa(idx),
					Result: result,
				}
			}
		}()
	}

	for i := range payloads {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	br := &BatchResult{
		Results:   results,
		TotalJobs: len(payloads),
	}
	for _, r := range results {
		if r != nil {
			br.CompletedJobs++
		}
	}
	return br
}
