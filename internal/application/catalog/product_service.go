package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, subscriptionID, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	slug, err := uniqueSlug(ctx, subscriptionID, req.Name, s.productRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(subscriptionID, req.CategoryID, req.Name, slug, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.DiscountPrice != nil {
		if err := product.SetDiscountPrice(req.DiscountPrice); err != nil {
			return nil, err
		}
	}
	if req.Stock > 0 {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, subscriptionID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, subscriptionID uuid.UUID, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, subscriptionID, slug)
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// List retrieves products for a subscription
func (s *ProductService) List(ctx context.Context, subscriptionID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if domainFilter.Page == 0 {
		domainFilter = shared.DefaultFilter()
		domainFilter.Search = filter.Search
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.CategoryID != nil {
		products, err = s.productRepo.FindByCategory(ctx, subscriptionID, *filter.CategoryID, domainFilter)
	} else {
		products, err = s.productRepo.FindAllForSubscription(ctx, subscriptionID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = *ToProductResponse(&product)
	}

	return responses, total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, subscriptionID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, subscriptionID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" || req.Description != nil {
		name := product.Name
		if req.Name != "" {
			name = req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.DiscountPrice != nil {
		if err := product.SetDiscountPrice(req.DiscountPrice); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, subscriptionID, id); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, subscriptionID, id)
}
