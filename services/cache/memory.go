package cachesvc

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/trezcool/classdesk/core"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var (
	_ Cache            = (*MemoryCache)(nil)
	_ core.Revalidator = (*MemoryCache)(nil)
)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || (!e.expiresAt.IsZero() && c.now().After(e.expiresAt)) {
		return nil, false
	}
	return e.data, true
}

// Set stores data for ttl; a ttl <= 0 never expires.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
}

func (c *MemoryCache) Revalidate(_ context.Context, paths ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range paths {
		prefix := pathPrefix(p)
		for key := range c.entries {
			if strings.HasPrefix(key, prefix) {
				delete(c.entries, key)
			}
		}
	}
	return nil
}
