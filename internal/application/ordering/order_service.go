package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/ordering"
	"github.com/storekit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles order-related business operations
type OrderService struct {
	orderRepo ordering.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create places a new order. The order number is assigned here and never
// changes afterwards.
func (s *OrderService) Create(ctx context.Context, subscriptionID uuid.UUID) (*OrderResponse, error) {
	order, err := ordering.NewOrder(subscriptionID)
	if err != nil {
		s.logger.Error("Order number generation failed",
			zap.String("subscription_id", subscriptionID.String()),
			zap.Error(err))
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create order")
	}

	return ToOrderResponse(order), nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, subscriptionID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return nil, err
	}

	return ToOrderResponse(order), nil
}

// List retrieves orders for a subscription, most recent first
func (s *OrderService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	if filter.Page == 0 {
		base := shared.DefaultFilter()
		base.Search = filter.Search
		filter = base
	}
	if filter.OrderBy == "" {
		// Order numbers are ULIDs, so this is chronological.
		filter.OrderBy = "order_number"
		filter.OrderDir = "desc"
	}

	orders, err := s.orderRepo.FindAllForSubscription(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountForSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *ToOrderResponse(&order)
	}

	return responses, total, nil
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OrderNumber    string    `json:"order_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(order *ordering.Order) *OrderResponse {
	return &OrderResponse{
		ID:             order.ID,
		SubscriptionID: order.SubscriptionID,
		OrderNumber:    order.OrderNumber,
		CreatedAt:      order.CreatedAt,
	}
}
