package dto

import "net/http"

// Gate error codes. The API-key gate emits these before a request reaches any
// handler.
const (
	ErrCodeMissingAPIKey         = "MISSING_API_KEY"
	ErrCodeInvalidAPIKey         = "INVALID_API_KEY"
	ErrCodeSubscriptionSuspended = "SUBSCRIPTION_SUSPENDED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes not
// listed here fall back to 500 so an unmapped internal code never leaks as a
// client error.
var ErrorCodeHTTPStatus = map[string]int{
	// Gate
	ErrCodeMissingAPIKey:         http.StatusUnauthorized,
	ErrCodeInvalidAPIKey:         http.StatusUnauthorized,
	ErrCodeSubscriptionSuspended: http.StatusForbidden,
	// QUOTA_EXCEEDED is internal to the usage path; the gate translates it,
	// but a direct mapping keeps the fallback sane.
	"QUOTA_EXCEEDED": http.StatusForbidden,

	// Subscription lifecycle
	"ALREADY_SUBSCRIBED": http.StatusBadRequest,
	"PLAN_NOT_FOUND":     http.StatusBadRequest,
	"NO_SUBSCRIPTION":    http.StatusBadRequest,

	// Identity
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"EMAIL_TAKEN":         http.StatusBadRequest,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_NOT_FOUND":   http.StatusNotFound,
	"INVALID_EMAIL":       http.StatusBadRequest,
	"INVALID_PASSWORD":    http.StatusBadRequest,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	// Shared taxonomy
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"FORBIDDEN":            http.StatusForbidden,
	"INVALID_INPUT":        http.StatusBadRequest,
	"BAD_REQUEST":          http.StatusBadRequest,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"RATE_LIMITED":         http.StatusTooManyRequests,

	// Catalog
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_PARENT":     http.StatusBadRequest,
	"INVALID_CATEGORY":   http.StatusBadRequest,
	"INVALID_PRICE":      http.StatusBadRequest,
	"INVALID_STOCK":      http.StatusBadRequest,
	"INVALID_SLUG":       http.StatusBadRequest,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"HAS_CHILDREN":       http.StatusUnprocessableEntity,
	"HAS_PRODUCTS":       http.StatusUnprocessableEntity,

	// Configuration and infrastructure failures
	"MISSING_DEFAULT_PLAN":           http.StatusInternalServerError,
	"KEY_GENERATION_EXHAUSTED":       http.StatusInternalServerError,
	"KEY_GENERATION_FAILED":          http.StatusInternalServerError,
	"SLUG_GENERATION_FAILED":         http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":            http.StatusInternalServerError,
	"ORDER_NUMBER_GENERATION_FAILED": http.StatusInternalServerError,
	"INTERNAL_ERROR":                 http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
