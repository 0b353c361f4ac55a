package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ravenhold/realm-api/internal/service"
)

func TestMapServiceError_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not self", service.ErrNotSelf, http.StatusForbidden},
		{"user missing", service.ErrUserNotFound, http.StatusNotFound},
		{"entity missing", service.ErrEntityNotFound, http.StatusNotFound},
		{"region missing", service.ErrRegionNotFound, http.StatusNotFound},
		{"identity missing", service.ErrIdentityNotFound, http.StatusNotFound},
		{"user id taken", service.ErrUserIDExists, http.StatusConflict},
		{"entity name taken", service.ErrEntityNameExists, http.StatusConflict},
		{"region name taken", service.ErrRegionNameExists, http.StatusConflict},
		{"identity name taken", service.ErrIdentityNameExists, http.StatusConflict},
		{"unknown entity reference", service.ErrUnknownEntityRef, http.StatusUnprocessableEntity},
		{"unknown region reference", service.ErrUnknownRegionRef, http.StatusUnprocessableEntity},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pd := MapServiceError(tt.err)
			if pd.Status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, pd.Status)
			}
		})
	}
}

func TestMapServiceError_WrappedSentinel(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("lookup failed"), service.ErrRegionNotFound)
	pd := MapServiceError(wrapped)

	if pd.Status != http.StatusNotFound {
		t.Errorf("expected wrapped sentinel to map to 404, got %d", pd.Status)
	}
}

func TestMapServiceError_ReferenceErrorsNameTheField(t *testing.T) {
	t.Parallel()

	pd := MapServiceError(service.ErrUnknownEntityRef)
	if len(pd.Errors) != 1 || pd.Errors[0].Field != "entity" {
		t.Errorf("expected entity field error, got %+v", pd.Errors)
	}

	pd = MapServiceError(service.ErrUnknownRegionRef)
	if len(pd.Errors) != 1 || pd.Errors[0].Field != "location" {
		t.Errorf("expected location field error, got %+v", pd.Errors)
	}
}

func TestMapServiceError_InternalHidesDetail(t *testing.T) {
	t.Parallel()

	pd := MapServiceError(errors.New("pq: connection refused at 10.0.0.3"))

	if pd.Detail == "" {
		t.Error("expected a generic detail message")
	}
	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("internal errors must not leak their cause, got %q", pd.Detail)
	}
}
