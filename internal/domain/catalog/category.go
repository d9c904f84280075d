package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// Category represents a product category in a tenant's catalog.
// Categories form a tree via ParentID; sibling names are unique per
// (subscription, parent).
type Category struct {
	shared.TenantAggregateRoot
	Name     string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_scope_name,priority:3"`
	ParentID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_category_scope_name,priority:2"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(subscriptionID uuid.UUID, name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(subscriptionID),
		Name:                strings.TrimSpace(name),
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new category under a parent
func NewChildCategory(subscriptionID uuid.UUID, name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	if parent.SubscriptionID != subscriptionID {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category belongs to another subscription")
	}

	category, err := NewCategory(subscriptionID, name)
	if err != nil {
		return nil, err
	}

	category.ParentID = &parent.ID
	return category, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
