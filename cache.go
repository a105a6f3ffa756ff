package resloc

import "sync"

// Cache is a concurrency-safe mapping from Resource to some derived value,
// e.g. parsed configuration.  It holds derived values only, never resource
// content.  Obtain one from Loader.Cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[Resource]any
}

// Get returns the cached value for r, if present.
func (c *Cache) Get(r Resource) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[r]
	return v, ok
}

// Put stores a value for r, replacing any previous one.
func (c *Cache) Put(r Resource, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[Resource]any)
	}
	c.entries[r] = v
}

// Delete removes the value for r, if present.
func (c *Cache) Delete(r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, r)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Cache returns the cache for the given value tag, creating it on first
// request.  Every call with an equal tag returns the same *Cache for the
// life of the loader, so concurrent first access never loses entries or
// constructs duplicates.
func (l *Loader) Cache(tag any) *Cache {
	l.cmu.Lock()
	defer l.cmu.Unlock()

	if l.caches == nil {
		l.caches = make(map[any]*Cache)
	}

	c, ok := l.caches[tag]
	if !ok {
		c = &Cache{}
		l.caches[tag] = c
	}
	return c
}

// ClearCaches empties every cache owned by this loader.  The caches
// themselves survive: a *Cache obtained earlier stays valid and is simply
// empty afterwards.
func (l *Loader) ClearCaches() {
	l.cmu.Lock()
	defer l.cmu.Unlock()

	for _, c := range l.caches {
		c.Clear()
	}
}
