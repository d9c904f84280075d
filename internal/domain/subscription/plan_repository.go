package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindBySlug finds a plan by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Plan, error)

	// FindAll finds all plans matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Plan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error

	// Delete deletes a plan
	Delete(ctx context.Context, id uuid.UUID) error
}
