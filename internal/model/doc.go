// Package model defines domain entities and data structures for the Realm API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Registered account with authentication credentials
//   - Entity: Creature template with health and combat actions
//   - Region: World location tracking which entities and identities are in it
//   - Identity: Player character with an embedded entity snapshot
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Entity struct {
//	    ID      string   `json:"_id"`
//	    Name    string   `json:"name"`
//	    Actions []Action `json:"actions"`
//	}
//
// # Request Validation
//
// Request types carry Validate methods returning field-level errors:
//
//	if errs := req.Validate(); len(errs) > 0 {
//	    return model.NewValidationError(errs)
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
