package recipeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured indicates the provider credential is missing. It is a
// configuration fault and is not retryable per request.
var ErrNotConfigured = errors.New("recipe api key not configured")

// Error is a failed provider call. StatusCode is 0 when no response was received.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: upstream status %d", e.Op, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

// IsQuotaExceeded reports whether the provider rejected the call for billing or quota reasons.
func IsQuotaExceeded(err error) bool {
	return StatusCode(err) == http.StatusPaymentRequired
}

// IsNotFound reports whether the provider has no record for the requested id.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
