package subscription

import (
	"regexp"
	"strings"

	"github.com/storekit/backend/internal/domain/shared"
)

// DefaultPlanSlug is the plan assigned when a subscription is created without
// an explicit plan. Its absence from the plan store is a configuration error.
const DefaultPlanSlug = "free"

// Plan-related errors
var (
	ErrPlanNotFound       = shared.NewDomainError("PLAN_NOT_FOUND", "Subscription plan not found")
	ErrMissingDefaultPlan = shared.NewDomainError("MISSING_DEFAULT_PLAN", "Default 'free' plan does not exist")
)

var planSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Plan represents a subscription tier (e.g. Free, Pro, Enterprise).
// The slug maps the tier internally and to external services.
type Plan struct {
	shared.BaseAggregateRoot
	Slug        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:text"`
	APIQuota    int64  `gorm:"not null"`             // Maximum API calls per period
	PeriodDays  int    `gorm:"not null;default:30"`  // Days after which the quota window resets
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "plans"
}

// NewPlan creates a new plan
func NewPlan(slug, name string, apiQuota int64, periodDays int) (*Plan, error) {
	if err := validatePlanSlug(slug); err != nil {
		return nil, err
	}
	if err := validatePlanName(name); err != nil {
		return nil, err
	}
	if apiQuota <= 0 {
		return nil, shared.NewDomainError("INVALID_QUOTA", "API quota must be positive")
	}
	if periodDays <= 0 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period days must be positive")
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		APIQuota:          apiQuota,
		PeriodDays:        periodDays,
	}, nil
}

// SetDescription sets the plan description
func (p *Plan) SetDescription(description string) {
	p.Description = description
}

// IsDefault reports whether this is the fallback plan for new subscriptions
func (p *Plan) IsDefault() bool {
	return p.Slug == DefaultPlanSlug
}

func validatePlanSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Plan slug cannot be empty")
	}
	if len(slug) > 50 {
		return shared.NewDomainError("INVALID_SLUG", "Plan slug cannot exceed 50 characters")
	}
	if !planSlugPattern.MatchString(strings.ToLower(slug)) {
		return shared.NewDomainError("INVALID_SLUG", "Plan slug can only contain lowercase letters, digits and hyphens")
	}
	return nil
}

func validatePlanName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Plan name cannot exceed 50 characters")
	}
	return nil
}
