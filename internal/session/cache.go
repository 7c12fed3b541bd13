package session

import "sync"

// Cache holds the most recent Result per set id for the lifetime of the
// process. It lets a reselected set show its score without resubmission.
// Nothing here is persisted; a restart starts empty.
type Cache struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewCache creates an empty result cache.
func NewCache() *Cache {
	return &Cache{results: make(map[string]Result)}
}

// Get returns the cached result for a set, if any.
func (c *Cache) Get(setID string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[setID]
	return r, ok
}

// Put stores the result for a set, replacing any prior one.
func (c *Cache) Put(setID string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[setID] = r
}

// Drop removes the cached result for a set. Used by the explicit retake
// action so a fresh attempt starts from zero.
func (c *Cache) Drop(setID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, setID)
}
