package handler

import (
	"context"
	"net/http"

	"github.com/ravenhold/realm-api/internal/model"
)

// IdentityService defines the identity operations the handler depends on
type IdentityService interface {
	Create(ctx context.Context, req model.CreateIdentityRequest) (*model.Identity, error)
	Get(ctx context.Context, id string) (*model.Identity, error)
	List(ctx context.Context) ([]model.IdentitySummary, error)
	Update(ctx context.Context, id string, req model.UpdateIdentityRequest) (*model.Identity, error)
	Delete(ctx context.Context, id string) error
}

// IdentityHandler handles player character endpoints
type IdentityHandler struct {
	identityService IdentityService
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(identityService IdentityService) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
	}
}

// Create handles POST /v1/identities
func (h *IdentityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req model.CreateIdentityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	identity, err := h.identityService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, identity, map[string]string{
		"self": "/v1/identities/" + identity.ID,
	})
}

// List handles GET /v1/identities. The listing is the redacted projection;
// appearance, personality and money only come back from the single get.
func (h *IdentityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	identities, err := h.identityService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, identities, len(identities), nil)
}

// Get handles GET /v1/identities/{identityId}
func (h *IdentityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	identity, err := h.identityService.Get(r.Context(), r.PathValue("identityId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, identity, map[string]string{
		"self": "/v1/identities/" + identity.ID,
	})
}

// Update handles PUT /v1/identities/{identityId}
func (h *IdentityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, model.NewMethodNotAllowedError("PUT"))
		return
	}

	var req model.UpdateIdentityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	identity, err := h.identityService.Update(r.Context(), r.PathValue("identityId"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, identity, map[string]string{
		"self": "/v1/identities/" + identity.ID,
	})
}

// Delete handles DELETE /v1/identities/{identityId}
func (h *IdentityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, model.NewMethodNotAllowedError("DELETE"))
		return
	}

	if err := h.identityService.Delete(r.Context(), r.PathValue("identityId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
