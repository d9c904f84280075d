package ordering

import (
	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const EventTypeOrderCreated = "OrderCreated"

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OrderNumber    string    `json:"order_number"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		SubscriptionID:  order.SubscriptionID,
		OrderNumber:     order.OrderNumber,
	}
}
