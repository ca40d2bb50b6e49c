// Package blob provides out-of-band content storage for file-bearing
// thing types. Blobs are keyed by the owning thing's ID plus a blob
// name, so one thing can carry several attachments.
//
// Three backends are provided: Memory for tests and development, Dir
// for a local filesystem tree, and S3 for any S3-compatible object
// store.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no blob exists for the key.
	ErrNotFound = errors.New("blob not found")

	// ErrTooLarge is returned when content exceeds the store's limit.
	ErrTooLarge = errors.New("blob exceeds maximum allowed size")

	// ErrMissingName is returned when the key is incomplete or malformed.
	ErrMissingName = errors.New("blob name is required")
)

// DefaultMaxSize is the default per-blob size limit (100 MB).
const DefaultMaxSize = 100 * 1024 * 1024

// Key identifies one blob: the owning thing plus a name unique within
// that thing.
type Key struct {
	ThingID uuid.UUID
	Name    string
}

// Info describes a stored blob.
type Info struct {
	Key         Key
	ContentType string
	Size        int64
	// SHA256 is the lowercase hex digest of the content.
	SHA256    string
	CreatedAt time.Time
}

// Store is the BLOB storage collaborator consumed by file-bearing thing
// types. Implementations must be safe for concurrent use.
type Store interface {
	// Put stores the content read from r under key, replacing any
	// existing blob. It returns the stored blob's metadata.
	Put(ctx context.Context, key Key, contentType string, r io.Reader) (*Info, error)

	// Get opens the blob for reading. The caller closes the reader.
	Get(ctx context.Context, key Key) (io.ReadCloser, *Info, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key Key) error

	// List returns metadata for every blob owned by the thing, in
	// unspecified order.
	List(ctx context.Context, thingID uuid.UUID) ([]Info, error)
}

func validateKey(key Key) error {
	if key.ThingID == uuid.Nil {
		return fmt.Errorf("%w: zero thing id", ErrMissingName)
	}
	if key.Name == "" {
		return ErrMissingName
	}
	if strings.ContainsAny(key.Name, "/\\") {
		return fmt.Errorf("%w: name contains path separator", ErrMissingName)
	}
	return nil
}
