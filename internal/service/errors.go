package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid user_id or password")
	ErrUserIDExists       = errors.New("user_id already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotSelf            = errors.New("not authorized to access this user")
)

// ===== Entity Errors =====
var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrEntityNameExists = errors.New("an entity with this name already exists")
)

// ===== Region Errors =====
var (
	ErrRegionNotFound   = errors.New("region not found")
	ErrRegionNameExists = errors.New("a region with this name already exists")
)

// ===== Identity Errors =====
var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityNameExists = errors.New("an identity with this name already exists")
	ErrUnknownEntityRef   = errors.New("entity reference does not resolve to a known entity")
	ErrUnknownRegionRef   = errors.New("location reference does not resolve to a known region")
)
