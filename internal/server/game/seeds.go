package game

import "sync"

// SeedCache is an in-memory SeedSource shared by every match. The server
// refreshes it from the seed library whenever a layout is saved.
type SeedCache struct {
	mu    sync.RWMutex
	seeds []string
}

func NewSeedCache(seeds []string) *SeedCache {
	c := &SeedCache{}
	c.Replace(seeds)
	return c
}

func (c *SeedCache) Seeds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.seeds...)
}

func (c *SeedCache) Replace(seeds []string) {
	c.mu.Lock()
	c.seeds = append([]string(nil), seeds...)
	c.mu.Unlock()
}

func (c *SeedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seeds)
}
