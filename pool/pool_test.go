package pool

import (
	"strings"
	"testing"
)

func TestBufferReuse(t *testing.T) {
	b := AcquireBuffer()
	b.WriteString("hello")
	ReleaseBuffer(b)

	b2 := AcquireBuffer()
	if b2.Len() != 0 {
		t.Errorf("acquired buffer not empty: %q", b2.String())
	}
	ReleaseBuffer(b2)
}

func TestBufferOversizedNotPooled(t *testing.T) {
	b := AcquireBuffer()
	b.WriteString(strings.Repeat("x", 2<<20))
	// Must not panic, must silently drop
	ReleaseBuffer(b)
}

func TestReleaseNil(t *testing.T) {
	ReleaseBuffer(nil)
	ReleaseStringSlice(nil)
}

func TestStringSliceReuse(t *testing.T) {
	s := AcquireStringSlice()
	*s = append(*s, "a", "b")
	ReleaseStringSlice(s)

	s2 := AcquireStringSlice()
	if len(*s2) != 0 {
		t.Errorf("acquired slice not empty: %v", *s2)
	}
	ReleaseStringSlice(s2)
}
