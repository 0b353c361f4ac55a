// Package jwt provides JSON Web Token utilities for the Realm API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for authentication.
//
// # Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "realm-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: "ragnar", Name: "Ragnar"})
//
// # Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// A service constructed with only a public key can validate but not sign,
// which suits processes that never issue tokens.
package jwt
