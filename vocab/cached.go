package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/gohealth/itemtypes/cache"
)

// Cached decorates a Service with an LRU cache. Both hits and
// known-missing codes are cached; transient errors are not.
type Cached struct {
	inner Service
	lru   *cache.Cache[string, cachedResult]
}

type cachedResult struct {
	entry    *Entry
	notFound bool
}

// NewCached wraps a service with a cache of the given capacity.
func NewCached(inner Service, capacity int) *Cached {
	return &Cached{
		inner: inner,
		lru:   cache.New[string, cachedResult](capacity),
	}
}

// Find implements Service.
func (c *Cached) Find(ctx context.Context, key Key, code string) (*Entry, error) {
	cacheKey := key.String() + "|" + code
	if r, ok := c.lru.Get(cacheKey); ok {
		if r.notFound {
			return nil, fmt.Errorf("%w: %q in %s", ErrCodeNotFound, code, key)
		}
		return r.entry, nil
	}

	entry, err := c.inner.Find(ctx, key, code)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			c.lru.Put(cacheKey, cachedResult{notFound: true})
		}
		return nil, err
	}
	c.lru.Put(cacheKey, cachedResult{entry: entry})
	return entry, nil
}

// Stats returns the underlying cache counters.
func (c *Cached) Stats() cache.Stats {
	return c.lru.Stats()
}
