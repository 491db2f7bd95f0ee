package profile

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// profileCache is an LRU of built profiles with time-based expiration.
// Every Invalidate advances a generation; a fill that started before the
// latest Invalidate is dropped so a stale read cannot outlive a write.
type profileCache struct {
	mu  sync.Mutex
	gen uint64
	lru *expirable.LRU[string, Profile]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	return &profileCache{
		lru: expirable.NewLRU[string, Profile](size, nil, ttl),
	}
}

func (c *profileCache) Get(userID string) (Profile, bool) {
	return c.lru.Get(userID)
}

// Generation is read before loading the user from the repository.
func (c *profileCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfCurrent stores p unless an Invalidate happened after gen was read.
func (c *profileCache) SetIfCurrent(userID string, p Profile, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.lru.Add(userID, p)
	return true
}

func (c *profileCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Remove(userID)
}

func (c *profileCache) Len() int {
	return c.lru.Len()
}
