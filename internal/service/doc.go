// Package service implements the business logic layer for the Realm API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrRegionNotFound   = errors.New("region not found")
//	    ErrUnknownRegionRef = errors.New("referenced region does not exist")
//	)
//
// # Example Usage
//
//	svc := NewIdentityService(identityRepo, entityRepo, regionRepo)
//	identity, err := svc.Create(ctx, model.CreateIdentityRequest{
//	    Name:     "Grim",
//	    Entity:   "Goblin",
//	    Location: "Ironhold",
//	})
package service
