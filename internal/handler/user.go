package handler

import (
	"context"
	"net/http"

	"github.com/ravenhold/realm-api/internal/middleware"
	"github.com/ravenhold/realm-api/internal/model"
	"github.com/ravenhold/realm-api/internal/service"
)

// AuthService defines the auth operations the user handler depends on
type AuthService interface {
	Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// UserHandler handles user registration, login and lookup endpoints
type UserHandler struct {
	authService AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Register handles POST /v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req model.CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, user, map[string]string{
		"user": "/v1/users/" + user.UserID,
	})
}

// Login handles POST /v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, model.NewMethodNotAllowedError("POST"))
		return
	}

	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, token, nil)
}

// Get handles GET /v1/users/{userId}. Users can only read their own record:
// a mismatched id is a 403 even when the target user does not exist, so the
// endpoint does not reveal which account ids are registered.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, model.NewMethodNotAllowedError("GET"))
		return
	}

	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	userID := r.PathValue("userId")
	if userID != callerID {
		WriteError(w, MapServiceError(service.ErrNotSelf))
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/v1/users/" + user.UserID,
	})
}
