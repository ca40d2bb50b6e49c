package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Dir is a filesystem-backed Store. Each blob lives at
// <root>/<thing-id>/<name> with a sidecar <name>.meta.json holding its
// metadata.
type Dir struct {
	root    string
	maxSize int64
}

// DirOption configures a Dir store.
type DirOption func(*Dir)

// WithDirMaxSize overrides the per-blob size limit.
func WithDirMaxSize(n int64) DirOption {
	return func(d *Dir) {
		d.maxSize = n
	}
}

// NewDir creates a Store rooted at the given directory, creating it if
// needed.
func NewDir(root string, opts ...DirOption) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root: %w", err)
	}
	d := &Dir{root: root, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dir) blobPath(key Key) string {
	return filepath.Join(d.root, key.ThingID.String(), key.Name)
}

func (d *Dir) metaPath(key Key) string {
	return d.blobPath(key) + ".meta.json"
}

// Put implements Store.
func (d *Dir) Put(ctx context.Context, key Key, contentType string, r io.Reader) (*Info, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := readLimited(r, d.maxSize)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(d.blobPath(key))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: %w", err)
	}

	sum := sha256.Sum256(data)
	info := Info{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now().UTC(),
	}

	if err := os.WriteFile(d.blobPath(key), data, 0o644); err != nil {
		return nil, fmt.Errorf("blob: %w", err)
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("blob: %w", err)
	}
	if err := os.WriteFile(d.metaPath(key), meta, 0o644); err != nil {
		return nil, fmt.Errorf("blob: %w", err)
	}
	return &info, nil
}

// Get implements Store.
func (d *Dir) Get(ctx context.Context, key Key) (io.ReadCloser, *Info, error) {
	meta, err := d.readMeta(key)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(d.blobPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, key.ThingID, key.Name)
		}
		return nil, nil, fmt.Errorf("blob: %w", err)
	}
	return f, meta, nil
}

// Delete implements Store.
func (d *Dir) Delete(ctx context.Context, key Key) error {
	for _, p := range []string{d.blobPath(key), d.metaPath(key)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("blob: %w", err)
		}
	}
	return nil
}

// List implements Store.
func (d *Dir) List(ctx context.Context, thingID uuid.UUID) ([]Info, error) {
	dir := filepath.Join(d.root, thingID.String())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("blob: %w", err)
	}
	var out []Info
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) == ".json" {
			continue
		}
		meta, err := d.readMeta(Key{ThingID: thingID, Name: name})
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	return out, nil
}

func (d *Dir) readMeta(key Key) (*Info, error) {
	data, err := os.ReadFile(d.metaPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, key.ThingID, key.Name)
		}
		return nil, fmt.Errorf("blob: %w", err)
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("blob: corrupt metadata for %s/%s: %w", key.ThingID, key.Name, err)
	}
	return &info, nil
}
