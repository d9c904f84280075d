package subscription

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository defines the interface for subscription persistence.
// Usage accounting and key rotation deliberately use field-scoped writes so
// the two operations can race on one row without clobbering each other.
type SubscriptionRepository interface {
	// FindByID finds a subscription by its ID with the plan preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByAccountID finds the subscription owned by an account
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Subscription, error)

	// FindByAPIKey finds a subscription by exact API key match
	FindByAPIKey(ctx context.Context, apiKey string) (*Subscription, error)

	// ExistsByAPIKey reports whether any subscription holds the given key
	ExistsByAPIKey(ctx context.Context, apiKey string) (bool, error)

	// ExistsForAccount reports whether the account already owns a subscription
	ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)

	// Create persists a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// UpdateKey persists only the API key and bookkeeping fields
	UpdateKey(ctx context.Context, sub *Subscription) error

	// SaveUsage persists the usage accounting fields (usage_count, is_active,
	// reset_at, updated_at) as one atomic write, compare-and-swapped on the
	// aggregate version. Returns shared.ErrConcurrencyConflict when another
	// writer got there first; callers reload and retry.
	SaveUsage(ctx context.Context, sub *Subscription) error

	// Delete deletes a subscription
	Delete(ctx context.Context, id uuid.UUID) error
}
