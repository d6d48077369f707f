package dto

import "net/http"

// Common API error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// httpStatusByCode maps error codes, including the domain taxonomy, onto
// HTTP status codes.
var httpStatusByCode = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeConflict:   http.StatusConflict,
	ErrCodeInternal:   http.StatusInternalServerError,

	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_SELECTOR":  http.StatusBadRequest,
	"UNKNOWN_ATTRIBUTE": http.StatusBadRequest,
	"INVALID_FEED":      http.StatusUnprocessableEntity,
	"NOT_INITIALIZED":   http.StatusConflict,
	"ALREADY_EXISTS":    http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
