package recipes

import "net/http"

// Error codes surfaced to clients.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotConfigured  = "SERVICE_NOT_CONFIGURED"
	CodeQuotaExceeded  = "UPSTREAM_QUOTA_EXCEEDED"
	CodeSearchFailed   = "SEARCH_FAILED"
	CodeRecipeNotFound = "RECIPE_NOT_FOUND"
	CodeFetchFailed    = "RECIPE_FETCH_FAILED"
)

// Error is an application-layer error that can be mapped to an HTTP response.
// Cause is never shown to clients outside development mode.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Cause }

func validationError(message string, details map[string]any) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}
