package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/subscription"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID with the plan preloaded
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByAccountID finds the subscription owned by an account
func (r *GormSubscriptionRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").First(&sub, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByAPIKey finds a subscription by exact API key match
func (r *GormSubscriptionRepository) FindByAPIKey(ctx context.Context, apiKey string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").First(&sub, "api_key = ?", apiKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ExistsByAPIKey reports whether any subscription holds the given key
func (r *GormSubscriptionRepository) ExistsByAPIKey(ctx context.Context, apiKey string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("api_key = ?", apiKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForAccount reports whether the account already owns a subscription
func (r *GormSubscriptionRepository) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new subscription
func (r *GormSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// UpdateKey persists only the API key and bookkeeping fields. The write is
// field-scoped so a concurrent usage write on the same row is never clobbered
func (r *GormSubscriptionRepository) UpdateKey(ctx context.Context, sub *subscription.Subscription) error {
	result := r.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]any{
			"api_key":    sub.APIKey,
			"updated_at": sub.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveUsage persists the usage accounting fields as one atomic write,
// compare-and-swapped on the aggregate version. The domain increments the
// version before this is called, so the guard matches on version-1
func (r *GormSubscriptionRepository) SaveUsage(ctx context.Context, sub *subscription.Subscription) error {
	result := r.db.WithContext(ctx).Model(&subscription.Subscription{}).
		Where("id = ? AND version = ?", sub.ID, sub.Version-1).
		Updates(map[string]any{
			"usage_count": sub.UsageCount,
			"is_active":   sub.IsActive,
			"reset_at":    sub.ResetAt,
			"updated_at":  sub.UpdatedAt,
			"version":     sub.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ subscription.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
