// Package vocab provides vocabulary services for checking coded values.
//
// A vocabulary is a named, versioned set of codes within a family, for
// example the "exercise-activities" vocabulary in the "wc" family. The
// package provides an in-memory service, an LRU-cached decorator, a
// chain that consults several services in order, a JSON loader, and a
// set of built-in vocabularies embedded in the binary.
package vocab

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors. Find implementations return these wrapped with %w.
var (
	// ErrVocabularyNotFound is returned when the service does not know
	// the requested vocabulary at all.
	ErrVocabularyNotFound = errors.New("vocabulary not found")

	// ErrCodeNotFound is returned when the vocabulary is known but the
	// code is not part of it.
	ErrCodeNotFound = errors.New("code not found in vocabulary")

	// ErrNotSupported is returned by services that cannot answer the
	// request, letting a chain move on to the next service.
	ErrNotSupported = errors.New("operation not supported")
)

// Key identifies a vocabulary. Version may be empty, meaning the
// service's current version.
type Key struct {
	Family  string
	Name    string
	Version string
}

// String formats the key as "family:name[@version]".
func (k Key) String() string {
	s := k.Family + ":" + k.Name
	if k.Version != "" {
		s += "@" + k.Version
	}
	return s
}

// Entry is one code within a vocabulary.
type Entry struct {
	// Code is the machine value.
	Code string

	// DisplayText is the human-readable rendition of the code.
	DisplayText string
}

// Service resolves codes against vocabularies.
type Service interface {
	// Find returns the entry for code in the keyed vocabulary. It
	// returns ErrVocabularyNotFound when the vocabulary is unknown and
	// ErrCodeNotFound when the code is not in it.
	Find(ctx context.Context, key Key, code string) (*Entry, error)
}

// Chain consults services in order. A service answering
// ErrVocabularyNotFound or ErrNotSupported passes the request on;
// ErrCodeNotFound is authoritative and stops the chain, since the
// vocabulary was found but does not contain the code.
type Chain struct {
	services []Service
}

// NewChain creates a chain over the given services.
func NewChain(services ...Service) *Chain {
	return &Chain{services: services}
}

// Add appends a service to the chain.
func (c *Chain) Add(svc Service) {
	c.services = append(c.services, svc)
}

// Find implements Service.
func (c *Chain) Find(ctx context.Context, key Key, code string) (*Entry, error) {
	for _, svc := range c.services {
		entry, err := svc.Find(ctx, key, code)
		if err == nil {
			return entry, nil
		}
		if errors.Is(err, ErrVocabularyNotFound) || errors.Is(err, ErrNotSupported) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrVocabularyNotFound, key)
}
