package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	shared.TenantScoped[Category]

	// FindByID finds a category by its ID within a subscription
	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Category, error)

	// FindChildren finds the direct children of a category
	FindChildren(ctx context.Context, subscriptionID, parentID uuid.UUID) ([]Category, error)

	// FindRoots finds the top-level categories of a subscription
	FindRoots(ctx context.Context, subscriptionID uuid.UUID) ([]Category, error)

	// ExistsByName checks whether a sibling category with the name exists
	ExistsByName(ctx context.Context, subscriptionID uuid.UUID, parentID *uuid.UUID, name string) (bool, error)

	// HasProducts checks whether any product references the category
	HasProducts(ctx context.Context, subscriptionID, id uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, subscriptionID, id uuid.UUID) error
}
