package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSubscription = "Subscription"

// Event type constants
const (
	EventTypeSubscriptionCreated   = "SubscriptionCreated"
	EventTypeAPIKeyRotated         = "APIKeyRotated"
	EventTypeUsageWindowReset      = "UsageWindowReset"
	EventTypeSubscriptionSuspended = "SubscriptionSuspended"
)

// SubscriptionCreatedEvent is published when a new subscription is created
type SubscriptionCreatedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID  `json:"subscription_id"`
	AccountID      uuid.UUID  `json:"account_id"`
	PlanID         uuid.UUID  `json:"plan_id"`
	ResetAt        *time.Time `json:"reset_at,omitempty"`
}

// NewSubscriptionCreatedEvent creates a new SubscriptionCreatedEvent
func NewSubscriptionCreatedEvent(sub *Subscription) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCreated, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		AccountID:       sub.AccountID,
		PlanID:          sub.PlanID,
		ResetAt:         sub.ResetAt,
	}
}

// APIKeyRotatedEvent is published when a subscription's API key is replaced.
// The key itself is deliberately not carried on the event.
type APIKeyRotatedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	AccountID      uuid.UUID `json:"account_id"`
}

// NewAPIKeyRotatedEvent creates a new APIKeyRotatedEvent
func NewAPIKeyRotatedEvent(sub *Subscription) *APIKeyRotatedEvent {
	return &APIKeyRotatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAPIKeyRotated, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		AccountID:       sub.AccountID,
	}
}

// UsageWindowResetEvent is published when an elapsed quota window is re-anchored
type UsageWindowResetEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID  `json:"subscription_id"`
	ResetAt        *time.Time `json:"reset_at,omitempty"`
}

// NewUsageWindowResetEvent creates a new UsageWindowResetEvent
func NewUsageWindowResetEvent(sub *Subscription) *UsageWindowResetEvent {
	return &UsageWindowResetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUsageWindowReset, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		ResetAt:         sub.ResetAt,
	}
}

// SubscriptionSuspendedEvent is published when usage exceeds the plan quota
type SubscriptionSuspendedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	AccountID      uuid.UUID `json:"account_id"`
	UsageCount     int64     `json:"usage_count"`
}

// NewSubscriptionSuspendedEvent creates a new SubscriptionSuspendedEvent
func NewSubscriptionSuspendedEvent(sub *Subscription) *SubscriptionSuspendedEvent {
	return &SubscriptionSuspendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionSuspended, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		AccountID:       sub.AccountID,
		UsageCount:      sub.UsageCount,
	}
}
