package shared

import (
	"context"

	"github.com/google/uuid"
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Offset returns the row offset implied by Page and PageSize
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// TenantScoped is implemented by repositories whose rows belong to a
// subscription. Resource handlers rely on this capability for scoping and
// never re-validate the subscription themselves.
type TenantScoped[T any] interface {
	FindAllForSubscription(ctx context.Context, subscriptionID uuid.UUID, filter Filter) ([]T, error)
	CountForSubscription(ctx context.Context, subscriptionID uuid.UUID) (int64, error)
}
