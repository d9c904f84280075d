package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByEmail finds an account by its email
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// ExistsByEmail checks whether an account with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new account
	Create(ctx context.Context, account *Account) error

	// Save updates an existing account
	Save(ctx context.Context, account *Account) error
}
