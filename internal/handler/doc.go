// Package handler provides the HTTP layer of the Realm API.
//
// Handlers decode and validate request payloads, delegate to the service
// layer, and shape responses. Successful responses are wrapped in a data
// envelope with optional HATEOAS links; errors use RFC 9457 Problem Details
// via MapServiceError, which translates service sentinel errors into
// consistent status codes across all endpoints.
//
// Each handler depends on a narrow service interface declared in this
// package, so tests can substitute lightweight fakes.
package handler
