package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storekit/backend/internal/domain/subscription"
)

// RedisConfig holds connection settings for Redis-backed caches
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisPlanCache implements subscription.PlanCache using Redis
type RedisPlanCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     subscription.PlanCacheConfig
	logger     *zap.Logger
}

// RedisPlanCacheOption is a functional option for configuring the cache
type RedisPlanCacheOption func(*RedisPlanCache)

// WithCacheConfig sets the cache configuration
func WithCacheConfig(config subscription.PlanCacheConfig) RedisPlanCacheOption {
	return func(c *RedisPlanCache) {
		c.config = config
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisPlanCacheOption {
	return func(c *RedisPlanCache) {
		c.logger = logger
	}
}

// NewRedisPlanCache creates a new Redis-based plan cache
func NewRedisPlanCache(cfg RedisConfig, opts ...RedisPlanCacheOption) (*RedisPlanCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisPlanCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		config:     subscription.DefaultPlanCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisPlanCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisPlanCacheWithClient(client *redis.Client, opts ...RedisPlanCacheOption) *RedisPlanCache {
	cache := &RedisPlanCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		config:     subscription.DefaultPlanCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// planCacheKey generates the cache key for a plan
func (c *RedisPlanCache) planCacheKey(slug string) string {
	return fmt.Sprintf("plan:%s", slug)
}

// Get retrieves a plan from cache
func (c *RedisPlanCache) Get(ctx context.Context, slug string) (*subscription.Plan, error) {
	cacheKey := c.planCacheKey(slug)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for plan", zap.String("slug", slug))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get plan from cache",
			zap.String("slug", slug),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get plan from cache: %w", err)
	}

	var plan subscription.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		c.logger.Error("Failed to unmarshal plan",
			zap.String("slug", slug),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	c.logger.Debug("Cache hit for plan", zap.String("slug", slug))
	return &plan, nil
}

// Set stores a plan in cache
func (c *RedisPlanCache) Set(ctx context.Context, slug string, plan *subscription.Plan, ttl time.Duration) error {
	if plan == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.PlanTTL
	}

	cacheKey := c.planCacheKey(slug)

	data, err := json.Marshal(plan)
	if err != nil {
		c.logger.Error("Failed to marshal plan",
			zap.String("slug", slug),
			zap.Error(err))
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set plan in cache",
			zap.String("slug", slug),
			zap.Error(err))
		return fmt.Errorf("failed to set plan in cache: %w", err)
	}

	c.logger.Debug("Cached plan",
		zap.String("slug", slug),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a plan from cache
func (c *RedisPlanCache) Delete(ctx context.Context, slug string) error {
	cacheKey := c.planCacheKey(slug)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to delete plan from cache",
			zap.String("slug", slug),
			zap.Error(err))
		return fmt.Errorf("failed to delete plan from cache: %w", err)
	}

	c.logger.Debug("Deleted plan from cache", zap.String("slug", slug))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisPlanCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisPlanCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisPlanCache implements PlanCache
var _ subscription.PlanCache = (*RedisPlanCache)(nil)
