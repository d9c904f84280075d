package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storekit/backend/internal/domain/subscription"
	"github.com/storekit/backend/internal/infrastructure/config"
)

// PlanCacheFactory creates plan caches based on configuration
type PlanCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           subscription.PlanCacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// PlanCacheFactoryOption is a functional option for configuring the factory
type PlanCacheFactoryOption func(*PlanCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) PlanCacheFactoryOption {
	return func(f *PlanCacheFactory) {
		f.logger = logger
	}
}

// WithPlanCacheConfig sets the cache configuration used by created caches
func WithPlanCacheConfig(cfg subscription.PlanCacheConfig) PlanCacheFactoryOption {
	return func(f *PlanCacheFactory) {
		f.cacheConfig = cfg
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache when
// Redis is unavailable. Default is true (allow fallback)
func WithInMemoryFallback(allow bool) PlanCacheFactoryOption {
	return func(f *PlanCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPlanCacheFactory creates a new factory
func NewPlanCacheFactory(cfg config.RedisConfig, opts ...PlanCacheFactoryOption) *PlanCacheFactory {
	f := &PlanCacheFactory{
		redisConfig:           cfg,
		cacheConfig:           subscription.DefaultPlanCacheConfig(),
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based plan cache
func (f *PlanCacheFactory) CreateRedisCache() (subscription.PlanCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisPlanCache(redisCfg,
		WithCacheConfig(f.cacheConfig),
		WithCacheLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis plan cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory plan cache.
// WARNING: In-memory caches do not share state across process instances;
// plan updates may take a full TTL to become visible on other instances
func (f *PlanCacheFactory) CreateInMemoryCache() subscription.PlanCache {
	return NewInMemoryPlanCache(
		WithInMemoryConfig(f.cacheConfig),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache creates a plan cache based on whether Redis is available.
// It tries Redis first and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true
func (f *PlanCacheFactory) CreateCache() (subscription.PlanCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis plan cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for plan cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory plan cache. "+
		"Plan updates may be delayed on other instances until the TTL expires.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
