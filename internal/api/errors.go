package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Client-facing messages.
const (
	msgEmptyTitle       = "Title cannot be empty"
	msgInvalidUUID      = "Invalid UUID format"
	msgInvalidBody      = "Invalid request body"
	msgValidation       = "Validation failed"
	msgNotFound         = "Resource not found"
	msgUnexpected       = "An unexpected error occurred"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return msgUnexpected

	case errors.Is(err, domain.ErrEmptyTitle):
		return msgEmptyTitle

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidUUID

	case errors.Is(err, domain.ErrInvalidFormat):
		return msgInvalidBody

	case store.IsNotFoundError(err):
		return msgNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return msgValidation

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err. customMessage, when not
// empty, replaces the message derived from the error type.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMessage string) {
	status := MapErrorToStatusCode(err)
	message := customMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// translateValidationError converts validator errors into domain errors.
// Errors of any other type are returned unchanged.
func translateValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	fe := validationErrs[0]
	if fe.Field() == "Title" {
		return domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle)
	}
	return domain.NewValidationError(fe.Field(), "failed on the '"+fe.Tag()+"' rule", domain.ErrValidation)
}

// invalidBodyError wraps a JSON decoding failure.
func invalidBodyError(err error) error {
	return &domain.ValidationError{
		Field:   "body",
		Message: err.Error(),
		Err:     domain.ErrInvalidFormat,
	}
}
