package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every failure response from this API has the same shape:
//
//	{"message": "course not found with id abc123"}
//
// One field, always present, so clients parse every failure the same way
// regardless of whether it's a 400, 403, 404, or 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sakif/course-api/internal/apperror"
)

// errorResponse is the standard error format returned by all API endpoints.
type errorResponse struct {
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code must be set BEFORE writing the body. Once
// Encode writes the first byte, the headers are sent and any later
// header change is silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeMessage sends the standard {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// This is the single place domain errors become HTTP. The service layer
// returns apperror sentinels; errors.Is walks the wrap chain (every layer
// wraps with %w) to find them:
//
//	ErrValidation → 400    ErrForbidden → 403    ErrNotFound → 404
//
// Anything else is an internal failure: 500 with a generic message.
// NEVER expose the raw error to the client — it can contain SQL text,
// file paths, or other internals.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		writeMessage(w, status, appErr.Message)
		return
	}

	writeMessage(w, http.StatusInternalServerError, "An internal error occurred")
}

// validationMessage renders the first failed rule of a validator error as
// a client-facing message, e.g. `"emailAddress" must be a valid email
// address`. The JSON field name (from the input struct's json tag,
// registered in newValidator) is what the client sees — clients know
// "emailAddress", not "EmailAddress".
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return `"` + fe.Field() + `" is required`
		case "email":
			return `"` + fe.Field() + `" must be a valid email address`
		default:
			return `"` + fe.Field() + `" is invalid`
		}
	}
	return "invalid request body"
}
