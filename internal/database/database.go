// Package database abstracts SurrealDB access behind a small interface so
// the repositories never touch the client library directly.
//
// Three query methods cover the access patterns:
//   - Query for statements returning lists (and multi-statement batches)
//   - QueryOne for single-record lookups
//   - Execute for mutations whose result is discarded
//
// Transactions are batch-based, not connection-level: BeginTx accumulates
// statements in memory and wraps them in BEGIN/COMMIT TRANSACTION at
// Commit. There is no isolation between statements before the commit, and
// Rollback just discards the accumulated batch. Multi-statement writes
// with shared variables go through TxBuilder (see transaction.go), which
// namespaces variables before batching.
//
// Failures map onto sentinel errors checked with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) { ... }
package database

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a unique index rejected the write
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection means the database could not be reached
	ErrConnection = errors.New("database connection error")

	// ErrQuery means the statement itself failed
	ErrQuery = errors.New("query error")
)

// Database is the storage surface the repositories build on
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction accumulates statements for an atomic batch
type Transaction interface {
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
	Commit() error
	Rollback() error
}

// Config holds the connection settings for a SurrealDB instance
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
