package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SourceCache marks a value served from memory.
const SourceCache = "cache"

// Value is a computed prime count for one bound.
type Value struct {
	Count      int
	Elapsed    time.Duration
	ComputedAt time.Time
}

// ComputeFunc produces a value on a miss and reports where it came from.
type ComputeFunc func(ctx context.Context) (Value, string, error)

type item struct {
	val       Value
	expiresAt time.Time
}

type result struct {
	val    Value
	source string
}

// Cache is a TTL cache of prime counts keyed by limit. Concurrent misses for
// the same limit share one computation.
type Cache struct {
	mu    sync.RWMutex
	items map[int]item
	ttl   time.Duration
	group singleflight.Group
}

func New(ttl time.Duration) *Cache {
	return &Cache{items: make(map[int]item), ttl: ttl}
}

// GetOrCompute returns the cached count for limit if still fresh, otherwise
// runs compute once for all concurrent callers and stores its result.
// Failed computations are not cached.
func (c *Cache) GetOrCompute(ctx context.Context, limit int, compute ComputeFunc) (Value, string, error) {
	c.mu.RLock()
	it, ok := c.items[limit]
	if ok && time.Now().Before(it.expiresAt) {
		v := it.val
		c.mu.RUnlock()
		return v, SourceCache, nil
	}
	c.mu.RUnlock()

	res, err, _ := c.group.Do(strconv.Itoa(limit), func() (interface{}, error) {
		v, src, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[limit] = item{val: v, expiresAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return result{val: v, source: src}, nil
	})
	if err != nil {
		return Value{}, "", err
	}
	r := res.(result)
	return r.val, r.source, nil
}

// Len returns the number of items in the cache (for tests).
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
