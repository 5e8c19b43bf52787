package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
)

const (
	codeValidation     = "VALIDATION_ERROR"
	codeUnauthorized   = "UNAUTHORIZED"
	codeNotFound       = "NOT_FOUND"
	codeMethod         = "METHOD_NOT_ALLOWED"
	codeRateLimited    = "RATE_LIMITED"
	codeInternal       = "INTERNAL_ERROR"
	codeIdempotencyKey = "IDEMPOTENCY_KEY_REUSE"
)

func oasError(ctx context.Context, code string, message string, details map[string]any) oas.ErrorResponse {
	var er oas.ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(map[string]any(details))
	}
	if rid := middleware.GetReqID(ctx); rid != "" {
		er.Error.RequestId = nullable.NewNullableWithValue(rid)
	}
	return er
}

func writeOASError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(oasError(r.Context(), code, message, details))
}

// withCause returns details plus the cause text when exposing causes is enabled.
// The input map is never modified.
func withCause(details map[string]any, cause error, expose bool) map[string]any {
	if !expose || cause == nil {
		return details
	}
	out := make(map[string]any, len(details)+1)
	maps.Copy(out, details)
	out["cause"] = cause.Error()
	return out
}

// requestErrorHandler answers bodies and parameters the wire layer could not decode.
func requestErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Invalid request body"
	var pe *oas.InvalidParamFormatError
	var te *oas.TooManyValuesForParamError
	switch {
	case errors.As(err, &pe):
		msg = "Invalid " + pe.ParamName
	case errors.As(err, &te):
		msg = "Invalid " + te.ParamName
	}
	writeOASError(w, r, http.StatusBadRequest, codeValidation, msg, map[string]any{"reason": err.Error()})
}

func responseErrorHandler(log *slog.Logger, expose bool) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeOASError(w, r, http.StatusInternalServerError, codeInternal, "Internal server error", withCause(nil, err, expose))
	}
}
