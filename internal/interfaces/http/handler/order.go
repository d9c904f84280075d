package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storekit/backend/internal/application/ordering"
)

// OrderHandler exposes tenant-scoped order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *ordering.OrderService
	gate         gin.HandlerFunc
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *ordering.OrderService, gate gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		gate:         gate,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(h.gate)
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}

// Create creates an order with a fresh generated order number
func (h *OrderHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), subscriptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated order list, newest first
func (h *OrderHandler) List(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns a single order
func (h *OrderHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), subscriptionID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
