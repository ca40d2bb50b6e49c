// Package pool provides sync.Pool helpers that reduce allocations in the
// hot encode/decode paths.
package pool

import (
	"bytes"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// AcquireBuffer gets an empty buffer from the pool.
func AcquireBuffer() *bytes.Buffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(b *bytes.Buffer) {
	if b == nil {
		return
	}
	// Oversized buffers are dropped rather than pinned in the pool
	if b.Cap() <= 1<<20 {
		bufferPool.Put(b)
	}
}

var stringSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, 16)
		return &s
	},
}

// AcquireStringSlice gets an empty string slice from the pool.
func AcquireStringSlice() *[]string {
	s := stringSlicePool.Get().(*[]string)
	*s = (*s)[:0]
	return s
}

// ReleaseStringSlice returns a string slice to the pool.
func ReleaseStringSlice(s *[]string) {
	if s == nil {
		return
	}
	if cap(*s) <= 256 {
		stringSlicePool.Put(s)
	}
}
