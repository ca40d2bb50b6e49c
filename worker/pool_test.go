package worker_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/worker"
)

// countingProcessor flags payloads equal to "bad" as invalid.
type countingProcessor struct{}

func (countingProcessor) Validate(ctx context.Context, payload []byte) *itemtypes.Result {
	r := itemtypes.AcquireResult()
	if string(payload) == "bad" {
		r.AddError(itemtypes.IssueStructure, "bad payload", "")
	}
	return r
}

func TestPoolSubmitAndCollect(t *testing.T) {
	pool := worker.NewPool(countingProcessor{}, 4)

	const jobs = 50
	go func() {
		for i := 0; i < jobs; i++ {
			payload := []byte("ok")
			if i%5 == 0 {
				payload = []byte("bad")
			}
			if !pool.Submit(worker.Job{ID: strconv.Itoa(i), Payload: payload}) {
				t.Errorf("Submit %d rejected", i)
			}
		}
	}()

	seen := make(map[string]bool, jobs)
	invalid := 0
	for i := 0; i < jobs; i++ {
		result := <-pool.Results()
		if seen[result.ID] {
			t.Errorf("duplicate result for job %s", result.ID)
		}
		seen[result.ID] = true
		if result.Result.HasErrors() {
			invalid++
		}
		result.Result.Release()
	}
	pool.Close()

	if len(seen) != jobs {
		t.Errorf("collected %d results, want %d", len(seen), jobs)
	}
	if invalid != jobs/5 {
		t.Errorf("invalid = %d, want %d", invalid, jobs/5)
	}

	stats := pool.Stats()
	if stats.JobsSubmitted != jobs || stats.JobsCompleted != jobs {
		t.Errorf("stats = %+v, want %d submitted and completed", stats, jobs)
	}
}

func TestPoolCloseAndWait(t *testing.T) {
	pool := worker.NewPool(countingProcessor{}, 2)

	for i := 0; i < 10; i++ {
		pool.Submit(worker.Job{ID: strconv.Itoa(i), Payload: []byte("ok")})
	}

	br := pool.CloseAndWait()
	defer br.Release()

	if br.CompletedJobs != 10 {
		t.Errorf("CompletedJobs = %d, want 10", br.CompletedJobs)
	}
	if br.HasErrors() {
		t.Error("HasErrors = true for all-ok batch")
	}
}

func TestPoolRejectsAfterClose(t *testing.T) {
	pool := worker.NewPool(countingProcessor{}, 1)
	pool.Close()

	if pool.Submit(worker.Job{ID: "late", Payload: []byte("ok")}) {
		t.Error("Submit accepted after Close")
	}
	if pool.SubmitAsync(worker.Job{ID: "late", Payload: []byte("ok")}) {
		t.Error("SubmitAsync accepted after Close")
	}
}

func TestBatchOrdering(t *testing.T) {
	payloads := make([][]byte, 25)
	for i := range payloads {
		if i%2 == 0 {
			payloads[i] = []byte("bad")
		} else {
			payloads[i] = []byte("ok")
		}
	}

	br := worker.Batch(context.Background(), countingProcessor{}, payloads, 4)
	defer br.Release()

	if br.TotalJobs != len(payloads) || br.CompletedJobs != len(payloads) {
		t.Fatalf("jobs = %d/%d, want %d/%d", br.CompletedJobs, br.TotalJobs, len(payloads), len(payloads))
	}
	for i, r := range br.Results {
		if r.ID != strconv.Itoa(i) {
			t.Errorf("result %d has ID %q", i, r.ID)
		}
		wantErr := i%2 == 0
		if r.Result.HasErrors() != wantErr {
			t.Errorf("result %d HasErrors = %v, want %v", i, r.Result.HasErrors(), wantErr)
		}
	}
	if !br.HasErrors() {
		t.Error("HasErrors = false, want true")
	}
	if got := br.ErrorCount(); got != 13 {
		t.Errorf("ErrorCount = %d, want 13", got)
	}
}

func TestBatchSequentialSmall(t *testing.T) {
	br := worker.Batch(context.Background(), countingProcessor{}, [][]byte{[]byte("ok"), []byte("bad")}, 8)
	defer br.Release()

	if br.CompletedJobs != 2 {
		t.Fatalf("CompletedJobs = %d, want 2", br.CompletedJobs)
	}
	if got := br.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
}

func TestBatchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payloads := make([][]byte, 100)
	for i := range payloads {
		payloads[i] = []byte("ok")
	}

	br := worker.Batch(ctx, countingProcessor{}, payloads, 4)
	defer br.Release()

	if br.CompletedJobs == len(payloads) {
		t.Error("cancelled batch completed every job")
	}
}

func TestBatchEmpty(t *testing.T) {
	br := worker.Batch(context.Background(), countingProcessor{}, nil, 4)
	if br.TotalJobs != 0 || len(br.Results) != 0 {
		t.Errorf("empty batch produced %+v", br)
	}
}
