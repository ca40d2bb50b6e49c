// Package worker provides a worker pool for parallel processing of
// thing XML payloads.
//
// The pool fans payloads out to N goroutines, each running a Processor
// (typically an engine.Codec), and streams correlated results back:
//
//	pool := worker.NewPool(codec, 4)
//	defer pool.Close()
//
//	for id, payload := range payloads {
//	    pool.Submit(worker.Job{ID: id, Payload: payload})
//	}
//
//	for result := range pool.Results() {
//	    // inspect result.Result
//	}
//
// For one-shot batches, Batch collects all results without channel
// plumbing.
package worker
