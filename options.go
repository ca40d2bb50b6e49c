package itemtypes

import "runtime"

// Option configures the codec engine.
type Option func(*Options)

// Options holds all configuration for the codec engine.
type Options struct {
	// Validation flags
	CheckVocabulary  bool
	StrictVocabulary bool
	CheckRanges      bool

	// Output
	Indent bool

	// Limits
	MaxErrors   int
	WorkerCount int

	// Cache sizes
	VocabularyCacheSize int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		// Range checks are cheap and always on by default; vocabulary
		// checks need a configured vocab service
		CheckRanges:      true,
		CheckVocabulary:  false,
		StrictVocabulary: false,

		Indent: false,

		MaxErrors:   0, // unlimited
		WorkerCount: runtime.NumCPU(),

		VocabularyCacheSize: 500,
	}
}

// WithVocabulary enables coded-value checks against the configured
// vocabulary service. Unknown codes produce warnings unless strict mode
// is also enabled.
func WithVocabulary(enable bool) Option {
	return func(o *Options) {
		o.CheckVocabulary = enable
	}
}

// WithStrictVocabulary promotes unknown-code warnings to errors.
func WithStrictVocabulary(strict bool) Option {
	return func(o *Options) {
		o.StrictVocabulary = strict
		if strict {
			o.CheckVocabulary = true
		}
	}
}

// WithRangeChecks enables value-range validation during decode.
func WithRangeChecks(enable bool) Option {
	return func(o *Options) {
		o.CheckRanges = enable
	}
}

// WithIndent enables indented XML output from Encode.
func WithIndent(enable bool) Option {
	return func(o *Options) {
		o.Indent = enable
	}
}

// WithMaxErrors stops validation after this many errors. Use 0 for
// unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithWorkerCount sets the number of workers used for batch operations.
// Values <= 0 fall back to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.WorkerCount = n
	}
}

// WithVocabularyCacheSize sets the LRU capacity for vocabulary lookups.
func WithVocabularyCacheSize(n int) Option {
	return func(o *Options) {
		o.VocabularyCacheSize = n
	}
}
