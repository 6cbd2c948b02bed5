package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	v   V
	exp time.Time
}

// TTLCache is a small map with per-entry expiry. Expired entries are
// dropped on read and by Sweep.
type TTLCache[V any] struct {
	mu  sync.RWMutex
	m   map[string]entry[V]
	now func() time.Time
}

func NewTTLCache[V any]() *TTLCache[V] {
	return &TTLCache[V]{m: make(map[string]entry[V]), now: time.Now}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.v, true
}

func (c *TTLCache[V]) Set(key string, v V, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry[V]{v: v, exp: exp}
	c.mu.Unlock()
}

// Sweep removes expired entries and returns how many remain.
func (c *TTLCache[V]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.m, k)
		}
	}
	return len(c.m)
}

// RenderCache implements BytesCache for rendered pages and fragments.
type RenderCache struct {
	*TTLCache[[]byte]
}

var _ BytesCache = (*RenderCache)(nil)

func NewRenderCache() *RenderCache {
	return &RenderCache{TTLCache: NewTTLCache[[]byte]()}
}

func (c *RenderCache) GetBytes(key string) ([]byte, bool) {
	return c.Get(key)
}

func (c *RenderCache) SetBytes(key string, value []byte, ttl time.Duration) {
	c.Set(key, value, ttl)
}
