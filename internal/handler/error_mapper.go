package handler

import (
	"errors"

	"github.com/ravenhold/realm-api/internal/model"
	"github.com/ravenhold/realm-api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotSelf):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrEntityNotFound):
		return model.NewNotFoundError("entity")
	case errors.Is(err, service.ErrRegionNotFound):
		return model.NewNotFoundError("region")
	case errors.Is(err, service.ErrIdentityNotFound):
		return model.NewNotFoundError("identity")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrUserIDExists),
		errors.Is(err, service.ErrEntityNameExists),
		errors.Is(err, service.ErrRegionNameExists),
		errors.Is(err, service.ErrIdentityNameExists):
		return model.NewConflictError(err.Error())

	// ===== Unresolvable References → 422 =====
	// The referenced name comes from the payload, not the URL, so an
	// unresolved reference is a validation failure rather than a 404.
	case errors.Is(err, service.ErrUnknownEntityRef):
		return model.NewValidationError([]model.FieldError{{Field: "entity", Message: err.Error()}})
	case errors.Is(err, service.ErrUnknownRegionRef):
		return model.NewValidationError([]model.FieldError{{Field: "location", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
