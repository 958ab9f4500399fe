package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"time"
)

// Cache is a small in-memory TTL cache with LRU eviction, safe for
// concurrent use. The auth middleware uses it to memoize verified
// bearer-token resolutions so hot tokens skip JWT parsing.
type Cache struct {
	mu       sync.Mutex
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
	maxItems int        // 0 = unlimited
}

type entry struct {
	key  string
	v    any
	exp  int64 // unix seconds; 0 = no expiry
	elem *list.Element
}

var (
	defaultCache *Cache
	once         sync.Once
	defaultMax   = 500
)

// Default returns a process-wide cache instance.
func Default() *Cache {
	once.Do(func() {
		defaultCache = New(defaultMax)
		go defaultCache.janitor(60 * time.Second)
	})
	return defaultCache
}

func New(maxItems int) *Cache {
	return &Cache{items: make(map[string]*entry), order: list.New(), maxItems: maxItems}
}

// Get returns the value and whether it exists and is not expired.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	now := time.Now().Unix()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if e.exp != 0 && e.exp < now {
		c.removeLocked(key)
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.v, true
}

// Set stores a value with TTL. ttl<=0 means no expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).Unix()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		e.v, e.exp = v, exp
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{key: key, v: v, exp: exp}
	e.elem = c.order.PushFront(e)
	c.items[key] = e
	if c.maxItems > 0 && c.order.Len() > c.maxItems {
		c.evictLRULocked()
	}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
}

// SetMaxItems updates capacity, trimming LRU entries if needed.
func (c *Cache) SetMaxItems(n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	c.maxItems = n
	for c.maxItems > 0 && c.order.Len() > c.maxItems {
		c.evictLRULocked()
	}
	c.mu.Unlock()
}

// janitor periodically removes expired items.
func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now().Unix()
		c.mu.Lock()
		for k, e := range c.items {
			if e.exp != 0 && e.exp < now {
				c.removeLocked(k)
			}
		}
		c.mu.Unlock()
	}
}

// KeyFromStrings creates a compact stable key from parts.
func KeyFromStrings(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	return string(h.Sum(nil))
}

// removeLocked removes key from map/list; caller must hold c.mu.
func (c *Cache) removeLocked(key string) {
	if e, ok := c.items[key]; ok {
		c.order.Remove(e.elem)
		delete(c.items, key)
	}
}

// evictLRULocked removes one LRU entry; caller must hold c.mu.
func (c *Cache) evictLRULocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	if e, ok := back.Value.(*entry); ok {
		delete(c.items, e.key)
	}
	c.order.Remove(back)
}
