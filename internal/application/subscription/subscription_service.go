package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/subscription"
	"github.com/storekit/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// maxUsageRetries bounds the reload-and-retry loop on version conflicts.
// Contention on one subscription row is short-lived, so a handful of
// attempts is enough; past that the request surfaces the conflict.
const maxUsageRetries = 5

// SubscriptionService orchestrates the subscription lifecycle: creation with
// key issuance, key rotation, and usage accounting against the plan quota.
type SubscriptionService struct {
	subRepo  subscription.SubscriptionRepository
	registry *PlanRegistry
	keygen   *subscription.KeyGenerator
	logger   *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subRepo subscription.SubscriptionRepository,
	registry *PlanRegistry,
	keygen *subscription.KeyGenerator,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		registry: registry,
		keygen:   keygen,
		logger:   logger,
	}
}

// Create provisions a subscription for an account. Each account owns at most
// one subscription.
func (s *SubscriptionService) Create(ctx context.Context, input CreateSubscriptionInput) (*SubscriptionResult, error) {
	exists, err := s.subRepo.ExistsForAccount(ctx, input.AccountID)
	if err != nil {
		s.logger.Error("Failed to check existing subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check existing subscription")
	}
	if exists {
		return nil, subscription.ErrAlreadySubscribed
	}

	var plan *subscription.Plan
	if input.PlanSlug == "" {
		plan, err = s.registry.Default(ctx)
	} else {
		plan, err = s.registry.BySlug(ctx, input.PlanSlug)
	}
	if err != nil {
		return nil, err
	}

	apiKey, err := s.keygen.GenerateUnique(ctx, s.subRepo.ExistsByAPIKey)
	if err != nil {
		s.logger.Error("API key allocation failed",
			zap.String("account_id", input.AccountID.String()),
			zap.Error(err))
		return nil, err
	}

	sub, err := subscription.NewSubscription(input.AccountID, plan, apiKey)
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		s.logger.Error("Failed to persist subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create subscription")
	}

	s.logger.Info("Subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("account_id", input.AccountID.String()),
		zap.String("plan", plan.Slug))

	return toSubscriptionResult(sub, time.Now()), nil
}

// GetForAccount returns the subscription owned by an account
func (s *SubscriptionService) GetForAccount(ctx context.Context, accountID uuid.UUID) (*SubscriptionResult, error) {
	sub, err := s.findForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toSubscriptionResult(sub, time.Now()), nil
}

// RotateKey replaces the account's API key with a fresh one and returns the
// updated subscription view. Only the key and bookkeeping fields are written,
// so a rotation racing with usage accounting on the same row cannot clobber
// the usage counters.
func (s *SubscriptionService) RotateKey(ctx context.Context, accountID uuid.UUID) (*SubscriptionResult, error) {
	sub, err := s.findForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.keygen.GenerateUnique(ctx, s.subRepo.ExistsByAPIKey)
	if err != nil {
		s.logger.Error("API key allocation failed during rotation",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err))
		return nil, err
	}

	if err := sub.RotateKey(apiKey); err != nil {
		return nil, err
	}

	if err := s.subRepo.UpdateKey(ctx, sub); err != nil {
		s.logger.Error("Failed to persist rotated key",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rotate API key")
	}

	s.logger.Info("API key rotated", zap.String("subscription_id", sub.ID.String()))

	return toSubscriptionResult(sub, time.Now()), nil
}

// Authenticate resolves a subscription by API key for the request gate.
// Unknown keys come back as shared.ErrUnauthorized without revealing whether
// the key ever existed.
func (s *SubscriptionService) Authenticate(ctx context.Context, apiKey string) (*subscription.Subscription, error) {
	sub, err := s.subRepo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		s.logger.Error("Subscription lookup by key failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to authenticate API key")
	}
	return sub, nil
}

// RecordUsage charges one unit of usage against a subscription. The domain
// transition (window reset, increment, suspension) runs on a snapshot and is
// persisted with a single compare-and-swap on the row version; a conflict
// means a concurrent request charged the same subscription, so the snapshot
// is reloaded and the transition replayed. Lost updates are impossible:
// every admitted request lands exactly one increment.
//
// On suspension the over-quota counter is still persisted before
// ErrQuotaExceeded is returned, so the denial itself is durable.
func (s *SubscriptionService) RecordUsage(ctx context.Context, subscriptionID uuid.UUID) (*UsageResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subscription", "record_usage",
		telemetry.WithAttribute("subscription_id", subscriptionID.String()))
	defer span.End()

	var lastErr error

	for attempt := 0; attempt < maxUsageRetries; attempt++ {
		sub, err := s.subRepo.FindByID(ctx, subscriptionID)
		if err != nil {
			return nil, err
		}

		usageErr := sub.RecordUsage(time.Now())
		if usageErr != nil && usageErr != subscription.ErrQuotaExceeded {
			return nil, usageErr
		}

		if err := s.subRepo.SaveUsage(ctx, sub); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				lastErr = err
				continue
			}
			s.logger.Error("Failed to persist usage",
				zap.String("subscription_id", subscriptionID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record usage")
		}

		result := &UsageResult{
			SubscriptionID: sub.ID,
			UsageCount:     sub.UsageCount,
			IsActive:       sub.IsActive,
		}

		telemetry.SetAttributes(span,
			"usage_count", sub.UsageCount,
			"retries", attempt)

		if usageErr == subscription.ErrQuotaExceeded {
			telemetry.AddEvent(span, "quota_exceeded",
				"usage_count", sub.UsageCount)
			s.logger.Warn("Subscription suspended over quota",
				zap.String("subscription_id", sub.ID.String()),
				zap.Int64("usage_count", sub.UsageCount))
			return result, subscription.ErrQuotaExceeded
		}

		return result, nil
	}

	telemetry.RecordError(span, lastErr)
	s.logger.Warn("Usage write exhausted retries",
		zap.String("subscription_id", subscriptionID.String()),
		zap.Int("attempts", maxUsageRetries))
	return nil, lastErr
}

func (s *SubscriptionService) findForAccount(ctx context.Context, accountID uuid.UUID) (*subscription.Subscription, error) {
	sub, err := s.subRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, subscription.ErrNoSubscription
		}
		s.logger.Error("Subscription lookup failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load subscription")
	}
	return sub, nil
}
