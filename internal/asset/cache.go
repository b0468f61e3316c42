package asset

import (
	"image"
	"sync"
)

// Cache keeps decoded images keyed by identifier.
type Cache struct {
	mu     sync.Mutex
	images map[string]image.Image

	// Stats
	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Get retrieves a decoded image.
func (c *Cache) Get(id string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.images[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores a decoded image.
func (c *Cache) Set(id string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[id] = img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Clear drops every entry and resets the stats.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string]image.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
