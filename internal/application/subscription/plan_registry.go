package subscription

import (
	"context"
	"errors"

	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/subscription"
	"go.uber.org/zap"
)

// PlanRegistry is the read path for plans. Lookups go cache-aside through the
// injected PlanCache; cache failures degrade to repository reads rather than
// failing the request.
type PlanRegistry struct {
	planRepo subscription.PlanRepository
	cache    subscription.PlanCache
	config   subscription.PlanCacheConfig
	logger   *zap.Logger
}

// NewPlanRegistry creates a new plan registry
func NewPlanRegistry(
	planRepo subscription.PlanRepository,
	cache subscription.PlanCache,
	config subscription.PlanCacheConfig,
	logger *zap.Logger,
) *PlanRegistry {
	return &PlanRegistry{
		planRepo: planRepo,
		cache:    cache,
		config:   config,
		logger:   logger,
	}
}

// BySlug resolves a plan by its slug
func (r *PlanRegistry) BySlug(ctx context.Context, slug string) (*subscription.Plan, error) {
	if cached, err := r.cache.Get(ctx, slug); err != nil {
		r.logger.Warn("Plan cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	plan, err := r.planRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, err
	}

	if err := r.cache.Set(ctx, slug, plan, r.config.PlanTTL); err != nil {
		r.logger.Warn("Plan cache write failed", zap.String("slug", slug), zap.Error(err))
	}

	return plan, nil
}

// Default resolves the default plan. A missing default plan is a deployment
// configuration error, not a caller mistake.
func (r *PlanRegistry) Default(ctx context.Context) (*subscription.Plan, error) {
	plan, err := r.BySlug(ctx, subscription.DefaultPlanSlug)
	if err != nil {
		if err == subscription.ErrPlanNotFound {
			r.logger.Error("Default plan is missing", zap.String("slug", subscription.DefaultPlanSlug))
			return nil, subscription.ErrMissingDefaultPlan
		}
		return nil, err
	}
	return plan, nil
}

// Invalidate drops a plan from the cache after an administrative change
func (r *PlanRegistry) Invalidate(ctx context.Context, slug string) {
	if err := r.cache.Delete(ctx, slug); err != nil {
		r.logger.Warn("Plan cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
