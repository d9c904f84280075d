package subscription

import (
	"context"
	"time"
)

// PlanCache provides a read-through cache for plans. Plans change rarely and
// are read on every subscription creation, so a short TTL keeps the registry
// cheap without an invalidation protocol.
//
// Cache keys:
// - Plans by slug: plan:{slug}
type PlanCache interface {
	// Get retrieves a plan from cache by its slug.
	// Returns nil, nil if the plan is not in cache (cache miss).
	Get(ctx context.Context, slug string) (*Plan, error)

	// Set stores a plan in cache with the specified TTL.
	// If ttl is 0, the implementation should use a default TTL.
	Set(ctx context.Context, slug string, plan *Plan, ttl time.Duration) error

	// Delete removes a plan from cache by its slug
	Delete(ctx context.Context, slug string) error

	// Close releases any resources held by the cache
	Close() error
}

// PlanCacheConfig holds configuration for the plan cache
type PlanCacheConfig struct {
	// PlanTTL is the time-to-live for cached plans (default: 5m)
	PlanTTL time.Duration
}

// DefaultPlanCacheConfig returns the default cache configuration
func DefaultPlanCacheConfig() PlanCacheConfig {
	return PlanCacheConfig{
		PlanTTL: 5 * time.Minute,
	}
}
