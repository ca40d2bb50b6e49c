// Package registry maps thing-type IDs to their Go implementations and
// parses <thing> envelopes into typed data.
//
// Type packages register themselves at init time; importing them for
// side effect is enough to make every type resolvable:
//
//	import _ "github.com/gohealth/itemtypes/types"
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
)

// Factory creates a zero value of a registered thing type.
type Factory func() itemtypes.TypeData

// Registry resolves thing-type IDs and names to factories. The zero
// value is not usable; call New.
type Registry struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Factory
	byName map[string]uuid.UUID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]Factory),
		byName: make(map[string]uuid.UUID),
	}
}

// Register adds a factory for the given type ID and name. Registering a
// type ID or name twice is an error.
func (r *Registry) Register(id uuid.UUID, name string, factory Factory) error {
	if id == uuid.Nil {
		return fmt.Errorf("registry: zero type id for %q", name)
	}
	if name == "" {
		return fmt.Errorf("registry: empty type name for %s", id)
	}
	if factory == nil {
		return fmt.Errorf("registry: nil factory for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[id]; dup {
		return fmt.Errorf("registry: type id %s already registered", id)
	}
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("registry: type name %q already registered", name)
	}
	r.byID[id] = factory
	r.byName[name] = id
	return nil
}

// MustRegister is Register, panicking on error. Intended for init-time
// registration where a failure is a programming error.
func (r *Registry) MustRegister(id uuid.UUID, name string, factory Factory) {
	if err := r.Register(id, name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for the type ID.
func (r *Registry) Lookup(id uuid.UUID) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[id]
	return f, ok
}

// LookupName returns the type ID registered under the given name.
func (r *Registry) LookupName(name string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// NewData creates a zero value of the type registered under the ID.
func (r *Registry) NewData(id uuid.UUID) (itemtypes.TypeData, error) {
	f, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", itemtypes.ErrUnknownTypeID, id)
	}
	return f(), nil
}

// Names returns the registered type names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Default is the process-wide registry that type packages register
// into at init time.
var Default = New()

// Register adds a factory to the default registry.
func Register(id uuid.UUID, name string, factory Factory) error {
	return Default.Register(id, name, factory)
}

// MustRegister adds a factory to the default registry, panicking on
// error.
func MustRegister(id uuid.UUID, name string, factory Factory) {
	Default.MustRegister(id, name, factory)
}

// Lookup resolves a type ID against the default registry.
func Lookup(id uuid.UUID) (Factory, bool) {
	return Default.Lookup(id)
}

// NewData creates typed data from the default registry.
func NewData(id uuid.UUID) (itemtypes.TypeData, error) {
	return Default.NewData(id)
}
