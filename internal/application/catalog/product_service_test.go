package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAllForSubscription(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, subscriptionID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForSubscription(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, subscriptionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, subscriptionID uuid.UUID, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, subscriptionID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, subscriptionID, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, subscriptionID, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, subscriptionID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	args := m.Called(ctx, subscriptionID, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAllForSubscription(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, subscriptionID, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountForSubscription(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, subscriptionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, subscriptionID, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, subscriptionID, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRoots(ctx context.Context, subscriptionID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, subscriptionID uuid.UUID, parentID *uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, subscriptionID, parentID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasProducts(ctx context.Context, subscriptionID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, subscriptionID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	args := m.Called(ctx, subscriptionID, id)
	return args.Error(0)
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	subscriptionID := uuid.New()

	newCategory := func(t *testing.T) *catalog.Category {
		t.Helper()
		category, err := catalog.NewCategory(subscriptionID, "Electronics")
		require.NoError(t, err)
		return category
	}

	t.Run("creates product with generated slug", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)
		category := newCategory(t)

		categoryRepo.On("FindByID", ctx, subscriptionID, category.ID).Return(category, nil)
		productRepo.On("ExistsBySlug", ctx, subscriptionID, "mechanical-keyboard").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, subscriptionID, CreateProductRequest{
			CategoryID: category.ID,
			Name:       "Mechanical Keyboard",
			Price:      decimal.NewFromFloat(89.99),
			Stock:      5,
		})

		require.NoError(t, err)
		assert.Equal(t, "mechanical-keyboard", result.Slug)
		assert.Equal(t, int64(5), result.Stock)
		assert.True(t, result.InStock)
		productRepo.AssertExpectations(t)
	})

	t.Run("uniquifies slug on collision", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)
		category := newCategory(t)

		categoryRepo.On("FindByID", ctx, subscriptionID, category.ID).Return(category, nil)
		productRepo.On("ExistsBySlug", ctx, subscriptionID, "mechanical-keyboard").Return(true, nil)
		productRepo.On("ExistsBySlug", ctx, subscriptionID, mock.AnythingOfType("string")).Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, subscriptionID, CreateProductRequest{
			CategoryID: category.ID,
			Name:       "Mechanical Keyboard",
			Price:      decimal.NewFromFloat(89.99),
		})

		require.NoError(t, err)
		assert.Regexp(t, `^mechanical-keyboard-[0-9a-f]{6}$`, result.Slug)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)
		categoryID := uuid.New()

		categoryRepo.On("FindByID", ctx, subscriptionID, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, subscriptionID, CreateProductRequest{
			CategoryID: categoryID,
			Name:       "Keyboard",
			Price:      decimal.NewFromInt(10),
		})

		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()
	subscriptionID := uuid.New()

	newProduct := func(t *testing.T) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct(subscriptionID, uuid.New(), "Keyboard", "keyboard", decimal.NewFromInt(50))
		require.NoError(t, err)
		return product
	}

	t.Run("updates price and stock with lock", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository))
		product := newProduct(t)

		productRepo.On("FindByID", ctx, subscriptionID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		price := decimal.NewFromInt(60)
		stock := int64(12)
		result, err := service.Update(ctx, subscriptionID, product.ID, UpdateProductRequest{
			Price: &price,
			Stock: &stock,
		})

		require.NoError(t, err)
		assert.True(t, result.Price.Equal(price))
		assert.Equal(t, stock, result.Stock)
	})

	t.Run("surfaces version conflict", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository))
		product := newProduct(t)

		productRepo.On("FindByID", ctx, subscriptionID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(shared.ErrConcurrencyConflict)

		price := decimal.NewFromInt(60)
		_, err := service.Update(ctx, subscriptionID, product.ID, UpdateProductRequest{Price: &price})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
