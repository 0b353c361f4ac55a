package handler

import (
	"net/http"

	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/model"
)

// HealthHandler reports service and database liveness
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "up"
	code := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{
		"status":   status,
		"database": dbStatus,
	})
}

// NotFound is the fallback for unmatched routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, &model.ProblemDetails{
		Type:   "https://realm-api.ravenhold.dev/errors/not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: "Requested resource " + r.URL.Path + " does not exist",
		Code:   model.ErrCodeNotFound,
	})
}
