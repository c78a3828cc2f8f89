package dto

import "net/http"

// Standardized error codes used across the API surface
const (
	// General errors
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"

	// Authentication errors
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeTokenMissing = "ERR_TOKEN_MISSING"
	ErrCodeNonceInvalid = "ERR_NONCE_INVALID"
	ErrCodeAccessDenied = "ERR_ACCESS_DENIED"

	// Domain errors
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	ErrCodeInvalidPrice  = "ERR_INVALID_PRICE"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrency   = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeUnknownOption = "ERR_UNKNOWN_OPTION"

	// Upstream errors
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeInternal:     http.StatusInternalServerError,

	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenMissing: http.StatusUnauthorized,
	ErrCodeNonceInvalid: http.StatusUnauthorized,
	ErrCodeAccessDenied: http.StatusForbidden,

	ErrCodeInvalidState:  http.StatusConflict,
	ErrCodeInvalidPrice:  http.StatusBadRequest,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConcurrency:   http.StatusConflict,
	ErrCodeUnknownOption: http.StatusBadRequest,

	ErrCodeUpstreamUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeValidation,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrency,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_STATE":        ErrCodeInvalidState,

	"INVALID_NAME":     ErrCodeValidation,
	"INVALID_CODE":     ErrCodeValidation,
	"INVALID_PRICE":    ErrCodeInvalidPrice,
	"INVALID_ITEM":     ErrCodeValidation,
	"INVALID_CUSTOMER": ErrCodeValidation,
	"ALREADY_TRASHED":  ErrCodeInvalidState,
	"ALREADY_ACTIVE":   ErrCodeInvalidState,
	"UNKNOWN_OPTION":   ErrCodeUnknownOption,
}

// NormalizeErrorCode converts a domain error code to its API error code
func NormalizeErrorCode(code string) string {
	if normalized, ok := DomainErrorCodeMapping[code]; ok {
		return normalized
	}
	return code
}
