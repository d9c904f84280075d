package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appsubscription "github.com/storekit/backend/internal/application/subscription"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/domain/subscription"
	"github.com/storekit/backend/internal/infrastructure/logger"
	"github.com/storekit/backend/internal/interfaces/http/dto"
)

// Context keys set by the API key gate
const (
	SubscriptionKey   = "subscription"
	SubscriptionIDKey = "subscription_id"
	APIKeyHeader      = "X-API-Key"
)

// SubscriptionGate is the slice of the subscription service the gate needs.
type SubscriptionGate interface {
	Authenticate(ctx context.Context, apiKey string) (*subscription.Subscription, error)
	RecordUsage(ctx context.Context, subscriptionID uuid.UUID) (*appsubscription.UsageResult, error)
}

// APIKeyAuth authenticates requests by API key and charges one unit of usage
// per admitted request. Handlers behind this middleware read the attached
// subscription for scoping and never re-validate the key.
//
// A request is admitted only after its usage increment has been persisted, so
// the quota cannot be bypassed by racing requests. When the increment crosses
// the quota the subscription is suspended as a side effect and the request
// that crossed is rejected.
func APIKeyAuth(gate SubscriptionGate, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" {
			abortWithCode(c, dto.ErrCodeMissingAPIKey, "API key is required")
			return
		}

		sub, err := gate.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			if errors.Is(err, shared.ErrUnauthorized) {
				abortWithCode(c, dto.ErrCodeInvalidAPIKey, "Invalid API key")
				return
			}
			log.Error("API key authentication failed", zap.Error(err))
			abortWithCode(c, "INTERNAL_ERROR", "Authentication failed")
			return
		}

		// Suspended subscriptions are rejected before any usage is charged.
		if !sub.IsActive {
			abortWithCode(c, dto.ErrCodeSubscriptionSuspended, "Subscription is suspended")
			return
		}

		if _, err := gate.RecordUsage(c.Request.Context(), sub.ID); err != nil {
			if errors.Is(err, subscription.ErrQuotaExceeded) {
				abortWithCode(c, dto.ErrCodeSubscriptionSuspended, "API quota exceeded")
				return
			}
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				abortWithCode(c, "CONCURRENCY_CONFLICT", "Usage accounting conflict, retry the request")
				return
			}
			log.Error("Usage accounting failed",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			abortWithCode(c, "INTERNAL_ERROR", "Failed to record usage")
			return
		}

		c.Set(SubscriptionKey, sub)
		c.Set(SubscriptionIDKey, sub.ID.String())

		ctx := c.Request.Context()
		ctx, _ = logger.WithSubscriptionID(ctx, logger.FromContext(ctx), sub.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSubscription retrieves the authenticated subscription from gin context
func GetSubscription(c *gin.Context) *subscription.Subscription {
	if value, exists := c.Get(SubscriptionKey); exists {
		if sub, ok := value.(*subscription.Subscription); ok {
			return sub
		}
	}
	return nil
}

// GetSubscriptionID retrieves the authenticated subscription ID from gin context
func GetSubscriptionID(c *gin.Context) uuid.UUID {
	if sub := GetSubscription(c); sub != nil {
		return sub.ID
	}
	return uuid.Nil
}

func abortWithCode(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
