package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ravenhold/realm-api/internal/middleware"
	"github.com/ravenhold/realm-api/internal/model"
	"github.com/ravenhold/realm-api/internal/service"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	registerFunc func(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	loginFunc    func(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	getUserFunc  func(ctx context.Context, userID string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	return m.registerFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return m.getUserFunc(ctx, userID)
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestUser() *model.User {
	now := time.Now()
	return &model.User{
		ID:        "user:abc123",
		UserID:    "ranger42",
		Name:      "Aria Windrunner",
		Email:     "aria@example.com",
		Hash:      "$2a$12$notarealhash",
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

func parseDataResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("failed to parse data response: %v", err)
	}
	return response
}

func validCreateUserBody() model.CreateUserRequest {
	return model.CreateUserRequest{
		UserID:   "ranger42",
		Name:     "Aria Windrunner",
		Email:    "aria@example.com",
		Password: "password123",
	}
}

// ============================================================================
// Register Tests
// ============================================================================

func TestUserHandler_Register_ReturnsCreated(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
			return newTestUser(), nil
		},
	})

	req := makeJSONRequest(http.MethodPost, "/v1/users", validCreateUserBody())
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	response := parseDataResponse(t, rr.Body.Bytes())
	data, _ := response["data"].(map[string]interface{})
	if data["user_id"] != "ranger42" {
		t.Errorf("expected user_id in response, got %v", data)
	}
	if _, hasHash := data["hash"]; hasHash {
		t.Error("password hash must never appear in responses")
	}
	links, _ := response["_links"].(map[string]interface{})
	if links["user"] != "/v1/users/ranger42" {
		t.Errorf("expected user link, got %v", links)
	}
}

func TestUserHandler_Register_InvalidBody_ReturnsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestUserHandler_Register_ValidationFailure_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{})

	body := validCreateUserBody()
	body.Password = "short"
	req := makeJSONRequest(http.MethodPost, "/v1/users", body)
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	problem := parseErrorResponse(t, rr.Body.Bytes())
	if len(problem.Errors) == 0 {
		t.Error("expected field errors in problem details")
	}
}

func TestUserHandler_Register_DuplicateUserID_ReturnsConflict(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		registerFunc: func(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
			return nil, service.ErrUserIDExists
		},
	})

	req := makeJSONRequest(http.MethodPost, "/v1/users", validCreateUserBody())
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func TestUserHandler_Login_ReturnsToken(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
			return &model.TokenResponse{
				Token:     "signed.jwt.token",
				TokenType: "Bearer",
				ExpiresIn: 3600,
			}, nil
		},
	})

	req := makeJSONRequest(http.MethodPost, "/v1/users/login", model.LoginRequest{
		UserID:   "ranger42",
		Password: "password123",
	})
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	response := parseDataResponse(t, rr.Body.Bytes())
	data, _ := response["data"].(map[string]interface{})
	if data["token"] != "signed.jwt.token" {
		t.Errorf("expected token in response, got %v", data)
	}
	if data["token_type"] != "Bearer" {
		t.Errorf("expected Bearer token type, got %v", data["token_type"])
	}
}

func TestUserHandler_Login_InvalidCredentials_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	})

	req := makeJSONRequest(http.MethodPost, "/v1/users/login", model.LoginRequest{
		UserID:   "ranger42",
		Password: "wrongpassword",
	})
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestUserHandler_Login_MissingFields_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{})

	req := makeJSONRequest(http.MethodPost, "/v1/users/login", model.LoginRequest{})
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

// ============================================================================
// Get Tests
// ============================================================================

func newUserMux(h *UserHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/users/{userId}", h.Get)
	return mux
}

func TestUserHandler_Get_Self_ReturnsUser(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		getUserFunc: func(ctx context.Context, userID string) (*model.User, error) {
			return newTestUser(), nil
		},
	})
	mux := newUserMux(h)

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/users/ranger42", nil), "ranger42")
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	response := parseDataResponse(t, rr.Body.Bytes())
	data, _ := response["data"].(map[string]interface{})
	if data["email"] != "aria@example.com" {
		t.Errorf("expected email in own record, got %v", data)
	}
}

func TestUserHandler_Get_Unauthenticated_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{})
	mux := newUserMux(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/ranger42", nil)
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestUserHandler_Get_OtherUser_ReturnsForbidden(t *testing.T) {
	t.Parallel()

	getUserCalled := false
	h := NewUserHandler(&mockAuthService{
		getUserFunc: func(ctx context.Context, userID string) (*model.User, error) {
			getUserCalled = true
			return newTestUser(), nil
		},
	})
	mux := newUserMux(h)

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/users/someone-else", nil), "ranger42")
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if getUserCalled {
		t.Error("service must not be consulted for a mismatched user id")
	}
}

func TestUserHandler_Get_SelfMissing_ReturnsNotFound(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mockAuthService{
		getUserFunc: func(ctx context.Context, userID string) (*model.User, error) {
			return nil, service.ErrUserNotFound
		},
	})
	mux := newUserMux(h)

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/users/ranger42", nil), "ranger42")
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
