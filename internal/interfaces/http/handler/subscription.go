package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsubscription "github.com/storekit/backend/internal/application/subscription"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/interfaces/http/middleware"
)

// SubscriptionHandler exposes subscription lifecycle endpoints. These sit
// behind JWT auth rather than the API key gate: they manage the key itself,
// so an account must be able to reach them with a suspended or lost key.
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *appsubscription.SubscriptionService
	jwtService          *auth.JWTService
	logger              *zap.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	subscriptionService *appsubscription.SubscriptionService,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		jwtService:          jwtService,
		logger:              logger,
	}
}

// RegisterRoutes registers subscription routes
func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	subs.Use(middleware.JWTAuthMiddleware(h.jwtService, h.logger))
	{
		subs.POST("", h.Create)
		subs.GET("/me", h.Get)
		subs.GET("/usage", h.Usage)
		subs.POST("/rotate-key", h.RotateKey)
	}
}

type createSubscriptionRequest struct {
	PlanSlug string `json:"plan_slug" binding:"omitempty,slug,max=50"`
}

// usageStatusResponse is the trimmed usage view. It never carries the API key.
type usageStatusResponse struct {
	UsageCount     int64 `json:"usage_count"`
	APIQuota       int64 `json:"api_quota"`
	IsActive       bool  `json:"is_active"`
	QuotaExceeded  bool  `json:"quota_exceeded"`
	DaysUntilReset int   `json:"days_until_reset"`
}

// Create provisions a subscription for the authenticated account.
// An omitted plan slug selects the free plan.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.subscriptionService.Create(c.Request.Context(), appsubscription.CreateSubscriptionInput{
		AccountID: accountID,
		PlanSlug:  req.PlanSlug,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns the authenticated account's subscription, API key included
func (h *SubscriptionHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.subscriptionService.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Usage returns the current usage window without exposing the API key
func (h *SubscriptionHandler) Usage(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.subscriptionService.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usageStatusResponse{
		UsageCount:     result.UsageCount,
		APIQuota:       result.Plan.APIQuota,
		IsActive:       result.IsActive,
		QuotaExceeded:  result.QuotaExceeded,
		DaysUntilReset: result.DaysUntilReset,
	})
}

// RotateKey replaces the account's API key. The old key stops authenticating
// as soon as the write lands.
func (h *SubscriptionHandler) RotateKey(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.subscriptionService.RotateKey(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
