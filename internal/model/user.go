package model

import (
	"strings"
	"time"
)

// User represents a registered account. UserID is the business key used for
// login; the record id is internal.
type User struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// TokenResponse is the login response body
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// CreateUserRequest represents a registration request
type CreateUserRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload
func (r *CreateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.UserID) == "" {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id is required"})
	} else if len(r.UserID) > 50 {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id must be 50 characters or less"})
	}
	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !isEmailLike(r.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 8 {
		errors = append(errors, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errors
}

// LoginRequest represents a login request
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Validate checks the login payload
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.UserID) == "" {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id is required"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// isEmailLike performs a minimal structural check, not full RFC validation
func isEmailLike(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
