package texture

import (
	"image"
	"sync"
)

// Cache is a concurrency-safe texture cache keyed by path. Decoded textures
// are immutable and shared by all readers.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA // nil if the load failed
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve loads and caches a texture by path. Returns nil if it cannot be
// loaded; the failure is cached too.
func (c *Cache) Resolve(path string) *image.NRGBA {
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, _ := LoadTexture(path)

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}
