package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/storekit/backend/internal/domain/subscription"
)

const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryPlanCache implements subscription.PlanCache using in-memory storage.
// Suitable for single-instance deployments and testing; cached plans are not
// shared across process instances.
type InMemoryPlanCache struct {
	plans   sync.Map // map[string]*cacheEntry
	config  subscription.PlanCacheConfig
	logger  *zap.Logger
	stopCh  chan struct{} // Channel to stop the cleanup goroutine
	stopped int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached plan with expiration time
type cacheEntry struct {
	plan      *subscription.Plan
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryPlanCacheOption is a functional option for configuring the cache
type InMemoryPlanCacheOption func(*InMemoryPlanCache)

// WithInMemoryConfig sets the cache configuration
func WithInMemoryConfig(config subscription.PlanCacheConfig) InMemoryPlanCacheOption {
	return func(c *InMemoryPlanCache) {
		c.config = config
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryPlanCacheOption {
	return func(c *InMemoryPlanCache) {
		c.logger = logger
	}
}

// NewInMemoryPlanCache creates a new in-memory plan cache
func NewInMemoryPlanCache(opts ...InMemoryPlanCacheOption) *InMemoryPlanCache {
	cache := &InMemoryPlanCache{
		config: subscription.DefaultPlanCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a plan from cache
func (c *InMemoryPlanCache) Get(ctx context.Context, slug string) (*subscription.Plan, error) {
	if value, ok := c.plans.Load(slug); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit for plan", zap.String("slug", slug))
			return entry.plan, nil
		}
		// Expired, remove from cache
		c.plans.Delete(slug)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for plan", zap.String("slug", slug))
	return nil, nil
}

// Set stores a plan in cache
func (c *InMemoryPlanCache) Set(ctx context.Context, slug string, plan *subscription.Plan, ttl time.Duration) error {
	if plan == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.PlanTTL
	}

	c.plans.Store(slug, &cacheEntry{
		plan:      plan,
		expiresAt: time.Now().Add(ttl),
	})

	c.logger.Debug("Cached plan",
		zap.String("slug", slug),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a plan from cache
func (c *InMemoryPlanCache) Delete(ctx context.Context, slug string) error {
	c.plans.Delete(slug)
	c.logger.Debug("Deleted plan from cache", zap.String("slug", slug))
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryPlanCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counts
func (c *InMemoryPlanCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryPlanCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.plans.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired() {
					c.plans.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryPlanCache implements PlanCache
var _ subscription.PlanCache = (*InMemoryPlanCache)(nil)
