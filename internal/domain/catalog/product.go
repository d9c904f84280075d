package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekit/backend/internal/domain/shared"
)

// Product represents a sellable item in a tenant's catalog.
// It is the aggregate root for product-related operations. The version is
// advanced by the repository at save time, not by individual mutators.
type Product struct {
	shared.TenantAggregateRoot
	CategoryID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name          string           `gorm:"type:varchar(100);not null;index"`
	Slug          string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_product_scope_slug,priority:2"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock         int64            `gorm:"not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. The slug must already be unique within
// the subscription; slug generation lives in the application layer.
func NewProduct(subscriptionID, categoryID uuid.UUID, name, slug string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(subscriptionID),
		CategoryID:          categoryID,
		Name:                strings.TrimSpace(name),
		Slug:                slug,
		Price:               price,
		IsActive:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the regular price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	p.Price = price
	p.UpdatedAt = time.Now()

	return nil
}

// SetDiscountPrice sets or clears the discounted price
func (p *Product) SetDiscountPrice(price *decimal.Decimal) error {
	if price != nil && !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Discount price must be positive")
	}

	p.DiscountPrice = price
	p.UpdatedAt = time.Now()

	return nil
}

// SetStock replaces the stock quantity
func (p *Product) SetStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = quantity
	p.UpdatedAt = time.Now()

	return nil
}

// ReduceStock removes quantity from stock
func (p *Product) ReduceStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Quantity cannot be negative")
	}
	if quantity > p.Stock {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()

	return nil
}

// Deactivate removes the product from sale
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// HasDiscount reports whether a discount below the regular price is set
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// FinalPrice returns the effective selling price
func (p *Product) FinalPrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}

// IsInStock reports whether any stock remains
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if len(slug) > 255 {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot exceed 255 characters")
	}
	return nil
}
