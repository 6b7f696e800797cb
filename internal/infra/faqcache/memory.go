package faqcache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
)

type entry struct {
	faqs      []consolidation.FAQ
	expiresAt time.Time
}

// MemoryCache is an in-process PublicCache used for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[uuid.UUID]entry)}
}

// Get implements consolidation.PublicCache.
func (c *MemoryCache) Get(_ context.Context, siteID uuid.UUID) ([]consolidation.FAQ, bool, error) {
	c.mu.RLock()
	cached, ok := c.entries[siteID]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(cached.expiresAt) {
		c.mu.Lock()
		delete(c.entries, siteID)
		c.mu.Unlock()
		return nil, false, nil
	}
	return cached.faqs, true, nil
}

// Set implements consolidation.PublicCache.
func (c *MemoryCache) Set(_ context.Context, siteID uuid.UUID, faqs []consolidation.FAQ, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[siteID] = entry{faqs: faqs, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

// Invalidate implements consolidation.PublicCache.
func (c *MemoryCache) Invalidate(_ context.Context, siteID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, siteID)
	c.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ consolidation.PublicCache = (*MemoryCache)(nil)
