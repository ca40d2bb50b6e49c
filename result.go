package itemtypes

import (
	"sync"

	"github.com/google/uuid"
)

// Result collects the outcome of decoding, encoding, or validating one
// thing. Call Release to return it to the pool when done.
type Result struct {
	// Valid is true if no errors were found (warnings are allowed).
	Valid bool `json:"valid"`

	// Issues contains all findings.
	Issues []Issue `json:"issues,omitempty"`

	// TypeName is the wire name of the thing type, e.g. "height".
	TypeName string `json:"typeName,omitempty"`

	// TypeID is the GUID of the thing type, if it could be determined.
	TypeID uuid.UUID `json:"typeId,omitempty"`

	// JobID correlates results in batch processing.
	JobID string `json:"jobId,omitempty"`

	// mu protects Issues
	mu sync.Mutex
}

var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Issues: make([]Issue, 0, 8),
		}
	},
}

// AcquireResult gets a Result from the pool. It starts valid with no
// issues.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool. The Result must not be used
// afterwards.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Oversized issue slices are dropped rather than pinned in the pool
	if cap(r.Issues) <= 256 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.Issues = r.Issues[:0]
	r.TypeName = ""
	r.TypeID = uuid.Nil
	r.JobID = ""
}

// AddIssue appends a finding. Safe for concurrent use.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issue)
	if issue.IsError() {
		r.Valid = false
	}
}

// AddError appends an error finding.
func (r *Result) AddError(code IssueCode, diagnostics, path string) {
	r.AddIssue(Issue{
		Severity:    SeverityError,
		Code:        code,
		Diagnostics: diagnostics,
		Path:        path,
	})
}

// AddWarning appends a warning finding.
func (r *Result) AddWarning(code IssueCode, diagnostics, path string) {
	r.AddIssue(Issue{
		Severity:    SeverityWarning,
		Code:        code,
		Diagnostics: diagnostics,
		Path:        path,
	})
}

// HasErrors reports whether any error or fatal issues were recorded.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.Issues {
		if i.IsError() {
			return true
		}
	}
	return false
}

// Errors returns the error and fatal issues.
func (r *Result) Errors() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, 0, len(r.Issues))
	for _, i := range r.Issues {
		if i.IsError() {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns the warning issues.
func (r *Result) Warnings() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, 0, len(r.Issues))
	for _, i := range r.Issues {
		if i.IsWarning() {
			out = append(out, i)
		}
	}
	return out
}

// ErrorCount returns the number of error and fatal issues.
func (r *Result) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, i := range r.Issues {
		if i.IsError() {
			n++
		}
	}
	return n
}

// IssueCount returns the total number of issues.
func (r *Result) IssueCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Issues)
}
