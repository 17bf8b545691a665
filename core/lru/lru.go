// Package lru provides a bounded least-recently-used cache that hands
// evicted values back to the caller.
package lru

import "container/list"

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// entry represents a cache entry.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a bounded LRU cache. Both Get and Put count as an access for
// recency purposes. When an insertion pushes the cache past its capacity,
// the least recently accessed entry is removed and returned to the caller
// from Put, so the caller can reclaim or recycle the evicted value.
//
// Cache is not safe for concurrent use; callers that share one instance
// across goroutines must synchronize externally.
type Cache[K comparable, V any] struct {
	maxEntries int
	entries    map[K]*list.Element
	evictList  *list.List
	stats      Stats
}

// New creates a Cache holding at most maxEntries entries. maxEntries must
// be at least 1; smaller values are treated as 1.
func New[K comparable, V any](maxEntries int) *Cache[K, V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache[K, V]{
		maxEntries: maxEntries,
		entries:    make(map[K]*list.Element),
		evictList:  list.New(),
	}
}

// Get retrieves a value from the cache and promotes it to most recently
// used. The second return value reports whether the key was present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return ent.Value.(*entry[K, V]).value, true
}

// Put stores a value in the cache as the most recently used entry. If the
// insertion exceeds the capacity, the least recently used entry is evicted
// and returned with evicted set to true. Storing under an existing key
// replaces the value and never evicts.
func (c *Cache[K, V]) Put(key K, value V) (evictedValue V, evicted bool) {
	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value
		var zero V
		return zero, false
	}

	ent := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.entries[key] = ent

	if c.evictList.Len() > c.maxEntries {
		return c.removeOldest()
	}

	var zero V
	return zero, false
}

// Remove removes a value from the cache. It reports whether the key was
// present.
func (c *Cache[K, V]) Remove(key K) bool {
	ent, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeElement(ent)
	return true
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.maxEntries
	return s
}

// removeOldest removes the least recently used entry and returns its value.
func (c *Cache[K, V]) removeOldest() (V, bool) {
	ent := c.evictList.Back()
	if ent == nil {
		var zero V
		return zero, false
	}
	e := ent.Value.(*entry[K, V])
	c.removeElement(ent)
	c.stats.Evictions++
	return e.value, true
}

// removeElement removes an element from the cache.
func (c *Cache[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	delete(c.entries, ent.Value.(*entry[K, V]).key)
}
