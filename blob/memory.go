package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Store suitable for tests and development.
type Memory struct {
	mu      sync.RWMutex
	blobs   map[Key]memoryBlob
	maxSize int64
}

type memoryBlob struct {
	info Info
	data []byte
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMemoryMaxSize overrides the per-blob size limit.
func WithMemoryMaxSize(n int64) MemoryOption {
	return func(m *Memory) {
		m.maxSize = n
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		blobs:   make(map[Key]memoryBlob),
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Put implements Store.
func (m *Memory) Put(ctx context.Context, key Key, contentType string, r io.Reader) (*Info, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := readLimited(r, m.maxSize)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	info := Info{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now().UTC(),
	}

	m.mu.Lock()
	m.blobs[key] = memoryBlob{info: info, data: data}
	m.mu.Unlock()
	return &info, nil
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key Key) (io.ReadCloser, *Info, error) {
	m.mu.RLock()
	b, ok := m.blobs[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, key.ThingID, key.Name)
	}
	info := b.info
	return io.NopCloser(bytes.NewReader(b.data)), &info, nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, key Key) error {
	m.mu.Lock()
	delete(m.blobs, key)
	m.mu.Unlock()
	return nil
}

// List implements Store.
func (m *Memory) List(ctx context.Context, thingID uuid.UUID) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Info
	for k, b := range m.blobs {
		if k.ThingID == thingID {
			out = append(out, b.info)
		}
	}
	return out, nil
}

// readLimited reads all of r, failing once more than limit bytes appear.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
