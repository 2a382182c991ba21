package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
)

// MemoryLatestCache is the process-local fallback used when no redis URL is
// configured, which is the common single-node deployment.
type MemoryLatestCache struct {
	mu        sync.RWMutex
	sub       domain.Submission
	expiresAt time.Time
	populated bool
	nowFn     func() time.Time
}

func NewMemoryLatestCache() *MemoryLatestCache {
	return &MemoryLatestCache{nowFn: func() time.Time { return time.Now().UTC() }}
}

func (c *MemoryLatestCache) Get(_ context.Context) (domain.Submission, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.populated || c.nowFn().After(c.expiresAt) {
		return domain.Submission{}, false, nil
	}
	return c.sub, true, nil
}

func (c *MemoryLatestCache) Set(_ context.Context, sub domain.Submission, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sub = sub
	c.expiresAt = c.nowFn().Add(ttl)
	c.populated = true
	return nil
}

func (c *MemoryLatestCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.populated = false
	return nil
}
