package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// Subscription-related errors
var (
	// ErrQuotaExceeded signals that a usage increment pushed the subscription
	// over its plan quota. The increment is still persisted; the caller maps
	// this to a suspended response at the boundary.
	ErrQuotaExceeded     = shared.NewDomainError("QUOTA_EXCEEDED", "Subscription has reached its quota limit")
	ErrAlreadySubscribed = shared.NewDomainError("ALREADY_SUBSCRIBED", "Account already has a subscription")
	ErrNoSubscription    = shared.NewDomainError("NO_SUBSCRIPTION", "Account has no subscription")
)

// Subscription is the unit of API-key authentication and quota metering.
// One subscription exists per owning account; catalog and order rows are
// scoped by its ID.
type Subscription struct {
	shared.BaseAggregateRoot
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	PlanID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Plan       *Plan      `gorm:"foreignKey:PlanID"`
	APIKey     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	IsActive   bool       `gorm:"not null;default:true"`
	UsageCount int64      `gorm:"not null;default:0"`
	ResetAt    *time.Time `gorm:"index"` // End of the current quota window
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a subscription for an account on the given plan.
// The API key must already be verified unique by the caller; the reset window
// is anchored at now + plan.PeriodDays.
func NewSubscription(accountID uuid.UUID, plan *Plan, apiKey string) (*Subscription, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if plan == nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan is required")
	}
	if apiKey == "" {
		return nil, shared.NewDomainError("INVALID_API_KEY", "API key cannot be empty")
	}

	resetAt := time.Now().Add(time.Duration(plan.PeriodDays) * 24 * time.Hour)
	sub := &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		PlanID:            plan.ID,
		Plan:              plan,
		APIKey:            apiKey,
		IsActive:          true,
		UsageCount:        0,
		ResetAt:           &resetAt,
	}

	sub.AddDomainEvent(NewSubscriptionCreatedEvent(sub))

	return sub, nil
}

// RotateKey replaces the API key with a fresh value. The retired key stops
// authenticating as soon as the change is persisted.
func (s *Subscription) RotateKey(apiKey string) error {
	if apiKey == "" {
		return shared.NewDomainError("INVALID_API_KEY", "API key cannot be empty")
	}

	s.APIKey = apiKey
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewAPIKeyRotatedEvent(s))

	return nil
}

// RecordUsage applies one metered API call at the given instant. If the quota
// window has elapsed the count restarts at zero and the window is re-anchored
// at now, not at the stale reset timestamp. The increment that crosses the
// quota is still recorded and the subscription transitions to the suspended
// state; suspension is sticky and survives later window resets.
func (s *Subscription) RecordUsage(now time.Time) error {
	if s.Plan == nil {
		return shared.NewDomainError("PLAN_NOT_LOADED", "Subscription plan must be loaded before recording usage")
	}

	if s.ResetAt != nil && now.After(*s.ResetAt) {
		s.UsageCount = 0
		resetAt := now.Add(time.Duration(s.Plan.PeriodDays) * 24 * time.Hour)
		s.ResetAt = &resetAt
		s.AddDomainEvent(NewUsageWindowResetEvent(s))
	}

	s.UsageCount++
	s.UpdatedAt = now
	s.IncrementVersion()

	if s.UsageCount > s.Plan.APIQuota {
		s.IsActive = false
		s.AddDomainEvent(NewSubscriptionSuspendedEvent(s))
		return ErrQuotaExceeded
	}

	return nil
}

// IsQuotaExceeded reports whether the current usage has reached the plan
// quota. Diagnostic read only; enforcement happens inside RecordUsage.
func (s *Subscription) IsQuotaExceeded() bool {
	if s.Plan == nil {
		return false
	}
	return s.UsageCount >= s.Plan.APIQuota
}

// DaysUntilReset returns the whole days until the quota window resets,
// or 0 if the window end has already passed or was never set.
func (s *Subscription) DaysUntilReset(now time.Time) int {
	if s.ResetAt == nil || now.After(*s.ResetAt) {
		return 0
	}
	return int(s.ResetAt.Sub(now).Hours() / 24)
}

// Reactivate clears a suspension. This is a deliberate status change by an
// owning collaborator, never an automatic side effect of a window reset.
func (s *Subscription) Reactivate() {
	if s.IsActive {
		return
	}
	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
