package ordering

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/storekit/backend/internal/domain/shared"
)

// Order represents a customer order placed within a subscription's store.
// The order number is a ULID assigned at creation and never changes.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber string `gorm:"type:varchar(26);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order with a freshly minted order number
func NewOrder(subscriptionID uuid.UUID) (*Order, error) {
	number, err := NewOrderNumber(time.Now())
	if err != nil {
		return nil, err
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(subscriptionID),
		OrderNumber:         number,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// NewOrderNumber mints a ULID order number anchored at the given time.
// ULIDs sort lexicographically by creation time, which keeps order listings
// chronological without an extra sort column.
func NewOrderNumber(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", shared.NewDomainError("ORDER_NUMBER_GENERATION_FAILED", "Failed to generate order number")
	}
	return id.String(), nil
}

// ValidateOrderNumber checks that a string is a well-formed order number
func ValidateOrderNumber(number string) error {
	if _, err := ulid.ParseStrict(strings.ToUpper(number)); err != nil {
		return shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is not valid")
	}
	return nil
}
