package net

import (
	"sync"
	"time"
)

type cacheEntry struct {
	expires time.Time
	resp    *Response
}

// Cache is an in-memory response cache keyed by URL.CacheKey. Expired entries are dropped
// when they are looked up.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newCache(now func() time.Time) *Cache {
	return &Cache{entries: make(map[string]cacheEntry), now: now}
}

func (c *Cache) get(key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.resp, true
}

func (c *Cache) put(key string, expires time.Time, resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{expires: expires, resp: resp}
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
