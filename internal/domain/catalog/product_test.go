package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct(uuid.New(), uuid.New(), "Mechanical Keyboard", "mechanical-keyboard", decimal.NewFromFloat(89.99))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	subscriptionID := uuid.New()
	categoryID := uuid.New()

	t.Run("creates active product", func(t *testing.T) {
		product, err := NewProduct(subscriptionID, categoryID, "Mechanical Keyboard", "mechanical-keyboard", decimal.NewFromFloat(89.99))

		require.NoError(t, err)
		assert.Equal(t, subscriptionID, product.SubscriptionID)
		assert.Equal(t, categoryID, product.CategoryID)
		assert.Equal(t, "mechanical-keyboard", product.Slug)
		assert.True(t, product.IsActive)
		assert.Nil(t, product.DiscountPrice)
		assert.Equal(t, int64(0), product.Stock)
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("rejects zero price", func(t *testing.T) {
		_, err := NewProduct(subscriptionID, categoryID, "Keyboard", "keyboard", decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(subscriptionID, categoryID, "Keyboard", "keyboard", decimal.NewFromInt(-5))

		assert.Error(t, err)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewProduct(subscriptionID, uuid.Nil, "Keyboard", "keyboard", decimal.NewFromInt(10))

		assert.Error(t, err)
	})

	t.Run("rejects empty slug", func(t *testing.T) {
		_, err := NewProduct(subscriptionID, categoryID, "Keyboard", "", decimal.NewFromInt(10))

		assert.Error(t, err)
	})
}

func TestProductPricing(t *testing.T) {
	t.Run("final price without discount", func(t *testing.T) {
		product := newTestProduct(t)

		assert.False(t, product.HasDiscount())
		assert.True(t, product.FinalPrice().Equal(decimal.NewFromFloat(89.99)))
	})

	t.Run("final price with discount", func(t *testing.T) {
		product := newTestProduct(t)
		discount := decimal.NewFromFloat(59.99)

		err := product.SetDiscountPrice(&discount)

		require.NoError(t, err)
		assert.True(t, product.HasDiscount())
		assert.True(t, product.FinalPrice().Equal(discount))
	})

	t.Run("discount at or above regular price is not a discount", func(t *testing.T) {
		product := newTestProduct(t)
		discount := decimal.NewFromFloat(89.99)

		err := product.SetDiscountPrice(&discount)

		require.NoError(t, err)
		assert.False(t, product.HasDiscount())
	})

	t.Run("clearing discount restores regular price", func(t *testing.T) {
		product := newTestProduct(t)
		discount := decimal.NewFromFloat(59.99)
		require.NoError(t, product.SetDiscountPrice(&discount))

		require.NoError(t, product.SetDiscountPrice(nil))

		assert.True(t, product.FinalPrice().Equal(decimal.NewFromFloat(89.99)))
	})

	t.Run("rejects non-positive discount", func(t *testing.T) {
		product := newTestProduct(t)
		discount := decimal.Zero

		err := product.SetDiscountPrice(&discount)

		assert.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("set and reduce stock", func(t *testing.T) {
		product := newTestProduct(t)

		require.NoError(t, product.SetStock(10))
		assert.True(t, product.IsInStock())

		require.NoError(t, product.ReduceStock(4))
		assert.Equal(t, int64(6), product.Stock)
	})

	t.Run("reduce below zero fails", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStock(3))

		err := product.ReduceStock(5)

		assert.Error(t, err)
		assert.Equal(t, int64(3), product.Stock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		product := newTestProduct(t)

		assert.Error(t, product.SetStock(-1))
		assert.Error(t, product.ReduceStock(-1))
	})

	t.Run("zero stock is out of stock", func(t *testing.T) {
		product := newTestProduct(t)

		assert.False(t, product.IsInStock())
	})
}

func TestProductDeactivate(t *testing.T) {
	product := newTestProduct(t)

	product.Deactivate()

	assert.False(t, product.IsActive)
	deactivatedAt := product.UpdatedAt

	product.Deactivate()

	assert.False(t, product.IsActive)
	assert.Equal(t, deactivatedAt, product.UpdatedAt)
}
