package identity

import (
	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeAccount = "Account"

// Event type constants
const (
	EventTypeAccountRegistered = "AccountRegistered"
)

// AccountRegisteredEvent is published when a new account is registered
type AccountRegisteredEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
}

// NewAccountRegisteredEvent creates a new AccountRegisteredEvent
func NewAccountRegisteredEvent(account *Account) *AccountRegisteredEvent {
	return &AccountRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountRegistered, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		Email:           account.Email,
	}
}
