// Package config manages application configuration for the Realm API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development, production or test
//	DB_HOST / DB_PORT    - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE
//	DB_USER / DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH - RS256 signing key
//	JWT_PUBLIC_KEY_PATH  - RS256 verification key
//	JWT_EXPIRATION_MINS  - Token lifetime in minutes
//	CORS_ALLOWED_ORIGINS - Comma-separated origin list
//
// # Validation
//
// Validate reports all problems at once via errors.Join rather than
// stopping at the first one.
package config
