package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, subscriptionID, req.ParentID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists under the same parent")
	}

	var category *catalog.Category

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, subscriptionID, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}

		category, err = catalog.NewChildCategory(subscriptionID, req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(subscriptionID, req.Name)
		if err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, subscriptionID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// List retrieves all categories for a subscription
func (s *CategoryService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]CategoryResponse, int64, error) {
	categories, err := s.categoryRepo.FindAllForSubscription(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.CountForSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = *ToCategoryResponse(&cat)
	}

	return responses, total, nil
}

// GetTree retrieves root categories with their direct children
func (s *CategoryService) GetTree(ctx context.Context, subscriptionID uuid.UUID) ([]CategoryTreeNode, error) {
	roots, err := s.categoryRepo.FindRoots(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	tree := make([]CategoryTreeNode, len(roots))
	for i, root := range roots {
		children, err := s.categoryRepo.FindChildren(ctx, subscriptionID, root.ID)
		if err != nil {
			return nil, err
		}

		nodes := make([]CategoryTreeNode, len(children))
		for j, child := range children {
			nodes[j] = CategoryTreeNode{ID: child.ID, Name: child.Name, Children: []CategoryTreeNode{}}
		}

		tree[i] = CategoryTreeNode{ID: root.ID, Name: root.Name, Children: nodes}
	}

	return tree, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, subscriptionID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, subscriptionID, category.ParentID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists under the same parent")
		}

		if err := category.Rename(req.Name); err != nil {
			return nil, err
		}

		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return nil, err
		}
	}

	return ToCategoryResponse(category), nil
}

// Delete deletes a category
func (s *CategoryService) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return err
	}

	children, err := s.categoryRepo.FindChildren(ctx, subscriptionID, category.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete category with children")
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, subscriptionID, category.ID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError("HAS_PRODUCTS", "Cannot delete category with associated products")
	}

	return s.categoryRepo.Delete(ctx, subscriptionID, id)
}
