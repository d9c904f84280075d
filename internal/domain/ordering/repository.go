package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	shared.TenantScoped[Order]

	// FindByID finds an order by its ID within a subscription
	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number within a subscription
	FindByOrderNumber(ctx context.Context, subscriptionID uuid.UUID, orderNumber string) (*Order, error)

	// Create persists a new order
	Create(ctx context.Context, order *Order) error
}
