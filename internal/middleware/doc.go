// Package middleware provides HTTP middleware for the Realm API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: bearer token validation and claims extraction
//   - RateLimit: request rate limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates bearer tokens and puts the claims in the
// request context:
//
//	mux.Handle("GET /v1/entities", authMiddleware(http.HandlerFunc(h.List)))
//
// After authentication, handlers can access the caller:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): returns the authenticated user_id
//   - GetClaims(ctx): returns the full token claims
//   - GetRequestID(ctx): returns the unique request identifier
package middleware
