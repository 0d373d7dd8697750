package review

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// DefaultCacheSize is the capacity used when NewCache is given a non-positive size.
const DefaultCacheSize = 256

// Cache holds the most recent Report per key, evicting the least recently used
// entry once full. It is safe for concurrent use.
//
// Keys are usually built with CacheKey: identical code shares one report,
// wherever it appears, and editing a snippet invalidates it.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
}

type cacheEntry struct {
	key    string
	report *Report
}

// NewCache creates a cache holding up to size reports.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		capacity: size,
		entries:  make(map[string]*list.Element, size),
		order:    list.New(),
	}
}

// CacheKey digests a snippet's language and source.
func CacheKey(language, source string) string {
	sum := sha256.Sum256([]byte(language + "\x00" + source))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached report for key.
func (c *Cache) Get(key string) (*Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).report, true //nolint:forcetypeassert // only *cacheEntry is stored
}

// Put stores report under key, replacing any previous report for it.
func (c *Cache) Put(key string, report *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).report = report //nolint:forcetypeassert // only *cacheEntry is stored
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, report: report})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key) //nolint:forcetypeassert // only *cacheEntry is stored
	}
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
