package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storekit/backend/internal/domain/catalog"
	"github.com/storekit/backend/internal/domain/shared"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, subscriptionID uuid.UUID, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(subscriptionID, name)
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), category))
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, subscriptionID, categoryID uuid.UUID, name, slug string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(subscriptionID, categoryID, name, slug, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("roots and children", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormCategoryRepository(db)
		subID := uuid.New()

		root := seedCategory(t, db, subID, "Electronics")
		child, err := catalog.NewChildCategory(subID, "Phones", root)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, child))

		roots, err := repo.FindRoots(ctx, subID)
		require.NoError(t, err)
		require.Len(t, roots, 1)
		assert.Equal(t, "Electronics", roots[0].Name)

		children, err := repo.FindChildren(ctx, subID, root.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, "Phones", children[0].Name)
	})

	t.Run("sibling name uniqueness is scoped to the parent", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormCategoryRepository(db)
		subID := uuid.New()

		root := seedCategory(t, db, subID, "Electronics")
		child, err := catalog.NewChildCategory(subID, "Accessories", root)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, child))

		exists, err := repo.ExistsByName(ctx, subID, &root.ID, "Accessories")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, subID, nil, "Accessories")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rows are isolated per subscription", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormCategoryRepository(db)
		mine := uuid.New()
		theirs := uuid.New()

		category := seedCategory(t, db, mine, "Books")

		_, err := repo.FindByID(ctx, theirs, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		count, err := repo.CountForSubscription(ctx, theirs)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("HasProducts reflects references", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormCategoryRepository(db)
		subID := uuid.New()

		category := seedCategory(t, db, subID, "Books")

		has, err := repo.HasProducts(ctx, subID, category.ID)
		require.NoError(t, err)
		assert.False(t, has)

		seedProduct(t, db, subID, category.ID, "Novel", "novel")

		has, err = repo.HasProducts(ctx, subID, category.ID)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("delete missing row is not found", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormCategoryRepository(db)

		err := repo.Delete(ctx, uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find by slug within subscription", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		subID := uuid.New()
		category := seedCategory(t, db, subID, "Books")

		seedProduct(t, db, subID, category.ID, "Novel", "novel")

		found, err := repo.FindBySlug(ctx, subID, "novel")
		require.NoError(t, err)
		assert.Equal(t, "Novel", found.Name)

		_, err = repo.FindBySlug(ctx, uuid.New(), "novel")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("slug reuse across subscriptions", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		first := uuid.New()
		second := uuid.New()

		seedProduct(t, db, first, seedCategory(t, db, first, "Books").ID, "Novel", "novel")
		seedProduct(t, db, second, seedCategory(t, db, second, "Books").ID, "Novel", "novel")

		taken, err := repo.ExistsBySlug(ctx, first, "novel")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.ExistsBySlug(ctx, uuid.New(), "novel")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("lists by category", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		subID := uuid.New()
		books := seedCategory(t, db, subID, "Books")
		games := seedCategory(t, db, subID, "Games")

		seedProduct(t, db, subID, books.ID, "Novel", "novel")
		seedProduct(t, db, subID, games.ID, "Chess", "chess")

		products, err := repo.FindByCategory(ctx, subID, books.ID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Novel", products[0].Name)

		all, err := repo.FindAllForSubscription(ctx, subID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("optimistic lock rejects stale writers", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		subID := uuid.New()
		category := seedCategory(t, db, subID, "Books")
		product := seedProduct(t, db, subID, category.ID, "Novel", "novel")

		first, err := repo.FindByID(ctx, subID, product.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, subID, product.ID)
		require.NoError(t, err)

		require.NoError(t, first.SetStock(5))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.SetStock(9))
		err = repo.SaveWithLock(ctx, second)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, subID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), found.Stock)
	})
}
