package itemtypes

// IssueSeverity represents the severity of a data-quality issue found
// while decoding, encoding, or validating a thing.
type IssueSeverity string

const (
	// SeverityFatal indicates processing could not continue.
	SeverityFatal IssueSeverity = "fatal"
	// SeverityError indicates the thing is invalid.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a potential problem worth reviewing.
	SeverityWarning IssueSeverity = "warning"
	// SeverityInformation indicates informational feedback.
	SeverityInformation IssueSeverity = "information"
)

// IssueCode classifies a data-quality issue.
type IssueCode string

const (
	// IssueStructure indicates the XML shape did not match the schema:
	// a missing root element or an element in the wrong place.
	IssueStructure IssueCode = "structure"
	// IssueRequired indicates a mandatory field or element is absent.
	IssueRequired IssueCode = "required"
	// IssueValue indicates a scalar outside its domain or unparseable.
	IssueValue IssueCode = "value"
	// IssueVocabulary indicates a coded value not present in its
	// declared vocabulary.
	IssueVocabulary IssueCode = "vocabulary"
	// IssueUnknownType indicates a type-id no registered type claims.
	IssueUnknownType IssueCode = "unknown-type"
	// IssueProcessing indicates an internal processing failure.
	IssueProcessing IssueCode = "processing"
)

// Issue is one data-quality finding, attached to a Result.
type Issue struct {
	// Severity of the issue.
	Severity IssueSeverity `json:"severity"`

	// Code classifying the issue.
	Code IssueCode `json:"code"`

	// Diagnostics holds human-readable detail.
	Diagnostics string `json:"diagnostics,omitempty"`

	// Path is a slash-separated element path to the problem,
	// e.g. "height/value/m".
	Path string `json:"path,omitempty"`

	// Phase names the check that produced the issue.
	Phase string `json:"phase,omitempty"`
}

// IsError reports whether the issue is an error or fatal.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError || i.Severity == SeverityFatal
}

// IsWarning reports whether the issue is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	s := string(i.Severity) + ": " + i.Diagnostics
	if i.Path != "" {
		s += " at " + i.Path
	}
	return s
}
