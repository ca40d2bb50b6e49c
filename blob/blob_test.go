package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	thingID := uuid.New()
	key := Key{ThingID: thingID, Name: "report.txt"}
	payload := []byte("systolic 120 diastolic 80")

	info, err := store.Put(ctx, key, "text/plain", bytes.NewReader(payload))
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(len(payload)), info.Size)

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), info.SHA256)

	rc, got, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "text/plain", got.ContentType)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	infos, err := store.List(ctx, thingID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "report.txt", infos[0].Key.Name)

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestDirStore(t *testing.T) {
	store, err := NewDir(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemoryStoreTooLarge(t *testing.T) {
	store := NewMemory(WithMemoryMaxSize(8))
	key := Key{ThingID: uuid.New(), Name: "big.bin"}
	_, err := store.Put(context.Background(), key, "application/octet-stream", strings.NewReader("nine bytes"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDirStoreTooLarge(t *testing.T) {
	store, err := NewDir(t.TempDir(), WithDirMaxSize(4))
	require.NoError(t, err)
	key := Key{ThingID: uuid.New(), Name: "big.bin"}
	_, err = store.Put(context.Background(), key, "application/octet-stream", strings.NewReader("too big"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want error
	}{
		{"missing name", Key{ThingID: uuid.New()}, ErrMissingName},
		{"missing thing id", Key{Name: "x"}, ErrMissingName},
		{"slash in name", Key{ThingID: uuid.New(), Name: "a/b"}, ErrMissingName},
		{"ok", Key{ThingID: uuid.New(), Name: "samples.csv"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.key)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	key := Key{ThingID: uuid.New(), Name: "gone.txt"}

	mem := NewMemory()
	assert.NoError(t, mem.Delete(ctx, key))

	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, dir.Delete(ctx, key))
}

func TestListEmpty(t *testing.T) {
	infos, err := NewMemory().List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, infos)
}
