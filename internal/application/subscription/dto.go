package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/subscription"
)

// CreateSubscriptionInput contains the data needed to create a subscription
type CreateSubscriptionInput struct {
	AccountID uuid.UUID
	PlanSlug  string // empty means the default plan
}

// SubscriptionResult is the full view of a subscription returned to its owner.
// It is the only place the API key leaves the system.
type SubscriptionResult struct {
	ID             uuid.UUID  `json:"id"`
	AccountID      uuid.UUID  `json:"account_id"`
	Plan           PlanInfo   `json:"plan"`
	APIKey         string     `json:"api_key"`
	IsActive       bool       `json:"is_active"`
	UsageCount     int64      `json:"usage_count"`
	ResetAt        *time.Time `json:"reset_at,omitempty"`
	DaysUntilReset int        `json:"days_until_reset"`
	QuotaExceeded  bool       `json:"quota_exceeded"`
	CreatedAt      time.Time  `json:"created_at"`
}

// PlanInfo describes a plan
type PlanInfo struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	APIQuota    int64     `json:"api_quota"`
	PeriodDays  int       `json:"period_days"`
}

// UsageResult reports the outcome of recording one unit of usage
type UsageResult struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	UsageCount     int64     `json:"usage_count"`
	IsActive       bool      `json:"is_active"`
}

func toPlanInfo(plan *subscription.Plan) PlanInfo {
	return PlanInfo{
		ID:          plan.ID,
		Slug:        plan.Slug,
		Name:        plan.Name,
		Description: plan.Description,
		APIQuota:    plan.APIQuota,
		PeriodDays:  plan.PeriodDays,
	}
}

func toSubscriptionResult(sub *subscription.Subscription, now time.Time) *SubscriptionResult {
	result := &SubscriptionResult{
		ID:             sub.ID,
		AccountID:      sub.AccountID,
		APIKey:         sub.APIKey,
		IsActive:       sub.IsActive,
		UsageCount:     sub.UsageCount,
		ResetAt:        sub.ResetAt,
		DaysUntilReset: sub.DaysUntilReset(now),
		CreatedAt:      sub.CreatedAt,
	}
	if sub.Plan != nil {
		result.Plan = toPlanInfo(sub.Plan)
		result.QuotaExceeded = sub.IsQuotaExceeded()
	}
	return result
}
