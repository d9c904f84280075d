package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	shared.TenantScoped[Product]

	// FindByID finds a product by its ID within a subscription
	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug within a subscription
	FindBySlug(ctx context.Context, subscriptionID uuid.UUID, slug string) (*Product, error)

	// FindByCategory finds products belonging to a category
	FindByCategory(ctx context.Context, subscriptionID, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// ExistsBySlug checks whether the slug is already taken within a subscription
	ExistsBySlug(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product using optimistic locking on its version
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, subscriptionID, id uuid.UUID) error
}
