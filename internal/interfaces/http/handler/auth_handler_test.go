package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storekit/backend/internal/application/identity"
	domainidentity "github.com/storekit/backend/internal/domain/identity"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/infrastructure/config"
	"github.com/storekit/backend/internal/infrastructure/persistence"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domainidentity.Account{}))

	logger := zap.NewNop()
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-handler-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storekit-test",
		MaxRefreshCount:        5,
	})
	authSvc := identity.NewAuthService(persistence.NewGormAccountRepository(db), jwtSvc, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	NewAuthHandler(authSvc, jwtSvc, logger).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthEndpoints(t *testing.T) {
	registerBody := gin.H{
		"email":     "owner@example.com",
		"full_name": "Store Owner",
		"password":  "correct-horse-battery",
	}

	t.Run("register returns a token pair", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Data identity.AuthResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.AccessToken)
		assert.NotEmpty(t, resp.Data.RefreshToken)
		assert.Equal(t, "Bearer", resp.Data.TokenType)
		assert.Equal(t, "owner@example.com", resp.Data.Account.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
	})

	t.Run("malformed email is rejected by binding", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"email":     "not-an-email",
			"full_name": "X",
			"password":  "correct-horse-battery",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login and fetch current account", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "owner@example.com",
			"password": "correct-horse-battery",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var login struct {
			Data identity.AuthResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

		w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", login.Data.AccessToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner@example.com")
	})

	t.Run("wrong password", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "owner@example.com",
			"password": "wrong-password-here",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})

	t.Run("refresh issues a new pair", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code)
		var reg struct {
			Data identity.AuthResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
			"refresh_token": reg.Data.RefreshToken,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var refreshed struct {
			Data identity.RefreshTokenResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
		assert.NotEmpty(t, refreshed.Data.AccessToken)
	})

	t.Run("change password requires the old one", func(t *testing.T) {
		r := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerBody)
		require.Equal(t, http.StatusCreated, w.Code)
		var reg struct {
			Data identity.AuthResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/change-password", reg.Data.AccessToken, gin.H{
			"old_password": "wrong-password-here",
			"new_password": "a-brand-new-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/auth/change-password", reg.Data.AccessToken, gin.H{
			"old_password": "correct-horse-battery",
			"new_password": "a-brand-new-password",
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
