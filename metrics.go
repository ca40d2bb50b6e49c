package itemtypes

import (
	"sync/atomic"
	"time"
)

// Metrics tracks codec performance using lock-free atomic counters.
// All methods are safe for concurrent use.
type Metrics struct {
	// Operation counts
	decodesTotal atomic.Uint64
	decodesValid atomic.Uint64
	encodesTotal atomic.Uint64

	// Timing (nanoseconds)
	decodeTimeTotal atomic.Uint64
	decodeTimeMin   atomic.Uint64
	decodeTimeMax   atomic.Uint64

	// Vocabulary lookups served from cache vs the backing service
	vocabHits   atomic.Uint64
	vocabMisses atomic.Uint64

	// Issue counts by severity
	errorsTotal   atomic.Uint64
	warningsTotal atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Min starts at max uint64 so the first sample becomes the minimum
	m.decodeTimeMin.Store(^uint64(0))
	return m
}

// RecordDecode records a completed decode.
func (m *Metrics) RecordDecode(duration time.Duration, valid bool) {
	m.decodesTotal.Add(1)
	if valid {
		m.decodesValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.decodeTimeTotal.Add(ns)

	for {
		min := m.decodeTimeMin.Load()
		if ns >= min || m.decodeTimeMin.CompareAndSwap(min, ns) {
			break
		}
	}
	for {
		max := m.decodeTimeMax.Load()
		if ns <= max || m.decodeTimeMax.CompareAndSwap(max, ns) {
			break
		}
	}
}

// RecordEncode records a completed encode.
func (m *Metrics) RecordEncode() {
	m.encodesTotal.Add(1)
}

// RecordVocabLookup records a vocabulary lookup and whether the cache
// served it.
func (m *Metrics) RecordVocabLookup(hit bool) {
	if hit {
		m.vocabHits.Add(1)
	} else {
		m.vocabMisses.Add(1)
	}
}

// RecordIssues records the issues found by one operation.
func (m *Metrics) RecordIssues(issues []Issue) {
	for _, i := range issues {
		switch {
		case i.IsError():
			m.errorsTotal.Add(1)
		case i.IsWarning():
			m.warningsTotal.Add(1)
		}
	}
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	DecodesTotal  uint64        `json:"decodesTotal"`
	DecodesValid  uint64        `json:"decodesValid"`
	EncodesTotal  uint64        `json:"encodesTotal"`
	DecodeTimeAvg time.Duration `json:"decodeTimeAvg"`
	DecodeTimeMin time.Duration `json:"decodeTimeMin"`
	DecodeTimeMax time.Duration `json:"decodeTimeMax"`
	VocabHits     uint64        `json:"vocabHits"`
	VocabMisses   uint64        `json:"vocabMisses"`
	ErrorsTotal   uint64        `json:"errorsTotal"`
	WarningsTotal uint64        `json:"warningsTotal"`
}

// Snapshot returns a point-in-time copy of the metrics.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		DecodesTotal:  m.decodesTotal.Load(),
		DecodesValid:  m.decodesValid.Load(),
		EncodesTotal:  m.encodesTotal.Load(),
		DecodeTimeMax: time.Duration(m.decodeTimeMax.Load()),
		VocabHits:     m.vocabHits.Load(),
		VocabMisses:   m.vocabMisses.Load(),
		ErrorsTotal:   m.errorsTotal.Load(),
		WarningsTotal: m.warningsTotal.Load(),
	}
	if min := m.decodeTimeMin.Load(); min != ^uint64(0) {
		s.DecodeTimeMin = time.Duration(min)
	}
	if s.DecodesTotal > 0 {
		s.DecodeTimeAvg = time.Duration(m.decodeTimeTotal.Load() / s.DecodesTotal)
	}
	return s
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.decodesTotal.Store(0)
	m.decodesValid.Store(0)
	m.encodesTotal.Store(0)
	m.decodeTimeTotal.Store(0)
	m.decodeTimeMin.Store(^uint64(0))
	m.decodeTimeMax.Store(0)
	m.vocabHits.Store(0)
	m.vocabMisses.Store(0)
	m.errorsTotal.Store(0)
	m.warningsTotal.Store(0)
}
