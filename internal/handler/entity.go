package handler

import (
	"context"
	"net/http"

	"github.com/ravenhold/realm-api/internal/model"
)

// EntityService defines the entity operations the handler depends on
type EntityService interface {
	Create(ctx context.Context, req model.CreateEntityRequest) (*model.Entity, error)
	Get(ctx context.Context, id string) (*model.Entity, error)
	List(ctx context.Context) ([]model.Entity, error)
	Update(ctx context.Context, id string, req model.UpdateEntityRequest) (*model.Entity, error)
	Delete(ctx context.Context, id string) error
}

// EntityHandler handles creature template endpoints
type EntityHandler struct {
	entityService EntityService
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(entityService EntityService) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
	}
}

// Create handles POST /v1/entities
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req model.CreateEntityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	entity, err := h.entityService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, entity, map[string]string{
		"self": "/v1/entities/" + entity.ID,
	})
}

// List handles GET /v1/entities
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	entities, err := h.entityService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, entities, len(entities), nil)
}

// Get handles GET /v1/entities/{entityId}
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	entity, err := h.entityService.Get(r.Context(), r.PathValue("entityId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entity, map[string]string{
		"self": "/v1/entities/" + entity.ID,
	})
}

// Update handles PUT /v1/entities/{entityId}
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, model.NewMethodNotAllowedError("PUT"))
		return
	}

	var req model.UpdateEntityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	entity, err := h.entityService.Update(r.Context(), r.PathValue("entityId"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, entity, map[string]string{
		"self": "/v1/entities/" + entity.ID,
	})
}

// Delete handles DELETE /v1/entities/{entityId}
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, model.NewMethodNotAllowedError("DELETE"))
		return
	}

	if err := h.entityService.Delete(r.Context(), r.PathValue("entityId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
