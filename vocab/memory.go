package vocab

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Service. Vocabularies are loaded up front and
// looked up under a read lock, so concurrent Finds are cheap.
type Memory struct {
	mu   sync.RWMutex
	sets map[Key]map[string]Entry

	// latest maps a versionless key to the newest loaded version, so
	// lookups without a version still resolve.
	latest map[Key]Key
}

// NewMemory creates an empty in-memory service.
func NewMemory() *Memory {
	return &Memory{
		sets:   make(map[Key]map[string]Entry),
		latest: make(map[Key]Key),
	}
}

// Load stores a vocabulary, replacing any previous load of the same
// key.
func (m *Memory) Load(key Key, entries []Entry) error {
	if key.Family == "" || key.Name == "" {
		return fmt.Errorf("vocab: incomplete key %s", key)
	}
	codes := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Code == "" {
			return fmt.Errorf("vocab: empty code in %s", key)
		}
		codes[e.Code] = e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[key] = codes
	bare := Key{Family: key.Family, Name: key.Name}
	if cur, ok := m.latest[bare]; !ok || key.Version >= cur.Version {
		m.latest[bare] = key
	}
	return nil
}

// Find implements Service.
func (m *Memory) Find(ctx context.Context, key Key, code string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	lookup := key
	if lookup.Version == "" {
		resolved, ok := m.latest[Key{Family: key.Family, Name: key.Name}]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrVocabularyNotFound, key)
		}
		lookup = resolved
	}

	codes, ok := m.sets[lookup]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVocabularyNotFound, key)
	}
	entry, ok := codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrCodeNotFound, code, lookup)
	}
	return &entry, nil
}

// Keys returns the loaded vocabulary keys in stable order.
func (m *Memory) Keys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]Key, 0, len(m.sets))
	for k := range m.sets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Len returns the number of loaded vocabularies.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sets)
}
