package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storekit/backend/internal/domain/identity"
	"github.com/storekit/backend/internal/domain/shared"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/infrastructure/config"
)

// MockAccountRepository is a mock implementation of identity.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storekit-test",
		MaxRefreshCount:        5,
	})
}

func newTestAuthService(repo *MockAccountRepository) *AuthService {
	return NewAuthService(repo, newTestJWTService(), zap.NewNop())
}

func mustAccount(t *testing.T, email, password string) *identity.Account {
	t.Helper()
	account, err := identity.NewAccount(email, "Test User", password)
	require.NoError(t, err)
	return account
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new account and issues tokens", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.Account")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Email:    "new@example.com",
			FullName: "New User",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "new@example.com", result.Account.Email)
		repo.AssertExpectations(t)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "taken@example.com",
			FullName: "Someone",
			Password: "password123",
		})

		assert.ErrorIs(t, err, identity.ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid password before touching the repository", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "new@example.com",
			FullName: "New User",
			Password: "short",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("logs in with valid credentials", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByEmail", ctx, "user@example.com").Return(account, nil)
		repo.On("Save", ctx, account).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotNil(t, account.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)

		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByEmail", ctx, "user@example.com").Return(account, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "wrongpass1"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")
		account.Deactivate()

		repo.On("FindByEmail", ctx, "user@example.com").Return(account, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "password123"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})

	t.Run("succeeds even when recording the login fails", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByEmail", ctx, "user@example.com").Return(account, nil)
		repo.On("Save", ctx, account).Return(assert.AnError)

		result, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, repo *MockAccountRepository, svc *AuthService, account *identity.Account) *AuthResult {
		t.Helper()
		repo.On("FindByEmail", ctx, account.Email).Return(account, nil).Once()
		repo.On("Save", ctx, account).Return(nil).Once()
		result, err := svc.Login(ctx, LoginInput{Email: account.Email, Password: "password123"})
		require.NoError(t, err)
		return result
	}

	t.Run("issues a fresh token pair", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")
		auth := login(t, repo, svc, account)

		repo.On("FindByID", ctx, account.ID).Return(account, nil)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: auth.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.NotEqual(t, auth.RefreshToken, result.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-token"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects refresh for deactivated account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")
		auth := login(t, repo, svc, account)

		account.Deactivate()
		repo.On("FindByID", ctx, account.ID).Return(account, nil)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: auth.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})

	t.Run("rejects refresh when the account is gone", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")
		auth := login(t, repo, svc, account)

		repo.On("FindByID", ctx, account.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: auth.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_NOT_FOUND", domainErr.Code)
	})
}

func TestGetCurrentAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("returns account info", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByID", ctx, account.ID).Return(account, nil)

		info, err := svc.GetCurrentAccount(ctx, account.ID)

		require.NoError(t, err)
		assert.Equal(t, account.ID, info.ID)
		assert.Equal(t, "user@example.com", info.Email)
	})

	t.Run("maps missing account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetCurrentAccount(ctx, id)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_NOT_FOUND", domainErr.Code)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and persists", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByID", ctx, account.ID).Return(account, nil)
		repo.On("Save", ctx, account).Return(nil)

		err := svc.ChangePassword(ctx, account.ID, "password123", "newpass456")

		require.NoError(t, err)
		assert.True(t, account.VerifyPassword("newpass456"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := newTestAuthService(repo)
		account := mustAccount(t, "user@example.com", "password123")

		repo.On("FindByID", ctx, account.ID).Return(account, nil)

		err := svc.ChangePassword(ctx, account.ID, "wrongpass1", "newpass456")

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
