package worker

import (
	"time"

	"github.com/gohealth/itemtypes"
)

// Job is one payload queued for processing.
type Job struct {
	// ID correlates the job with its result.
	ID string

	// Payload is the thing XML to process.
	Payload []byte
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Result holds the findings. The receiver owns it and should
	// Release it when done.
	Result *itemtypes.Result

	// Duration is the processing time for this job.
	Duration time.Duration
}

// BatchResult aggregates the results of a batch run.
type BatchResult struct {
	// Results holds all job results, in input order for Batch runs.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs processed.
	CompletedJobs int

	// TotalDuration sums the processing time across all jobs.
	TotalDuration time.Duration
}

// HasErrors reports whether any result carries error findings.
func (br *BatchResult) HasErrors() bool {
	for _, r := range br.Results {
		if r != nil && r.Result != nil && r.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorCount sums the error findings across all results.
func (br *BatchResult) ErrorCount() int {
	n := 0
	for _, r := range br.Results {
		if r != nil && r.Result != nil {
			n += r.Result.ErrorCount()
		}
	}
	return n
}

// Release returns every held Result to the pool.
func (br *BatchResult) Release() {
	for _, r := range br.Results {
		if r != nil {
			r.Result.Release()
			r.Result = nil
		}
	}
}
