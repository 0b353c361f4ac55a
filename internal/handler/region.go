package handler

import (
	"context"
	"net/http"

	"github.com/ravenhold/realm-api/internal/model"
)

// RegionService defines the region operations the handler depends on
type RegionService interface {
	Create(ctx context.Context, req model.CreateRegionRequest) (*model.Region, error)
	Get(ctx context.Context, id string) (*model.Region, error)
	List(ctx context.Context) ([]model.RegionSummary, error)
	Update(ctx context.Context, id string, req model.UpdateRegionRequest) (*model.Region, error)
	Delete(ctx context.Context, id string) error
	GetEntities(ctx context.Context, id string) (*model.RegionEntities, error)
	GetIdentities(ctx context.Context, id string) (*model.RegionIdentities, error)
}

// RegionHandler handles world location endpoints
type RegionHandler struct {
	regionService RegionService
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regionService RegionService) *RegionHandler {
	return &RegionHandler{
		regionService: regionService,
	}
}

// Create handles POST /v1/regions
func (h *RegionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req model.CreateRegionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	region, err := h.regionService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, region, map[string]string{
		"self": "/v1/regions/" + region.ID,
	})
}

// List handles GET /v1/regions
func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	regions, err := h.regionService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, regions, len(regions), nil)
}

// Get handles GET /v1/regions/{regionId}
func (h *RegionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	region, err := h.regionService.Get(r.Context(), r.PathValue("regionId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, region, regionLinks(region.ID))
}

// Update handles PUT /v1/regions/{regionId}
func (h *RegionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, model.NewMethodNotAllowedError("PUT"))
		return
	}

	var req model.UpdateRegionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	region, err := h.regionService.Update(r.Context(), r.PathValue("regionId"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, region, regionLinks(region.ID))
}

// Delete handles DELETE /v1/regions/{regionId}
func (h *RegionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, model.NewMethodNotAllowedError("DELETE"))
		return
	}

	if err := h.regionService.Delete(r.Context(), r.PathValue("regionId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// GetEntities handles GET /v1/regions/{regionId}/entities
func (h *RegionHandler) GetEntities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	result, err := h.regionService.GetEntities(r.Context(), r.PathValue("regionId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, result.Entities, len(result.Entities), map[string]string{
		"region": "/v1/regions/" + result.ID,
	})
}

// GetIdentities handles GET /v1/regions/{regionId}/identities
func (h *RegionHandler) GetIdentities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	result, err := h.regionService.GetIdentities(r.Context(), r.PathValue("regionId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, result.Identities, len(result.Identities), map[string]string{
		"region": "/v1/regions/" + result.ID,
	})
}

func regionLinks(id string) map[string]string {
	return map[string]string{
		"self":       "/v1/regions/" + id,
		"entities":   "/v1/regions/" + id + "/entities",
		"identities": "/v1/regions/" + id + "/identities",
	}
}
