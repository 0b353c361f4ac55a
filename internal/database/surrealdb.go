package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB is the production Database implementation, speaking the
// websocket protocol of a SurrealDB server.
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates an unconnected client; call Connect before use
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{config: cfg}
}

// Connect dials the server, signs in and selects the namespace/database
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close shuts down the connection
func (s *SurrealDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(context.Background())
}

// Ping verifies the connection is alive. The health endpoint calls this.
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs a statement (or batch) and returns one entry per statement.
// Each entry is a map with the statement's status and result rows; a
// non-OK status anywhere fails the whole call.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne runs a statement and unwraps the first row of the first result.
// An empty result set is ErrNotFound.
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return results[0], nil
	}
	if status, ok := resp["status"].(string); !ok || status != "OK" {
		return results[0], nil
	}

	if rows, ok := resp["result"].([]interface{}); ok {
		if len(rows) == 0 {
			return nil, ErrNotFound
		}
		return rows[0], nil
	}
	// Scalar result (e.g. from SELECT VALUE on a single field)
	return resp["result"], nil
}

// Execute runs a mutation and discards its rows
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// BeginTx starts a batch transaction. Statements accumulate locally and
// are sent as one BEGIN/COMMIT TRANSACTION block at Commit.
func (s *SurrealDB) BeginTx(ctx context.Context) (Transaction, error) {
	if s.db == nil {
		return nil, ErrConnection
	}
	return &surrealTx{db: s.db, ctx: ctx}, nil
}

// surrealTx buffers statements until Commit
type surrealTx struct {
	db        *surrealdb.DB
	ctx       context.Context
	queries   []txStatement
	committed bool
}

type txStatement struct {
	query string
	vars  map[string]interface{}
}

func (t *surrealTx) add(query string, vars map[string]interface{}) {
	t.queries = append(t.queries, txStatement{query: query, vars: vars})
}

func (t *surrealTx) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	t.add(query, vars)
	return nil, nil
}

func (t *surrealTx) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	t.add(query, vars)
	return nil, nil
}

func (t *surrealTx) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	t.add(query, vars)
	return nil
}

// Commit sends the buffered statements as one atomic batch. Variables from
// all statements are merged; callers with colliding names should go
// through TxBuilder instead.
func (t *surrealTx) Commit() error {
	if t.committed {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, q := range t.queries {
		sb.WriteString(q.query)
		sb.WriteString(";\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	merged := make(map[string]interface{})
	for _, q := range t.queries {
		for k, v := range q.vars {
			merged[k] = v
		}
	}

	if _, err := surrealdb.Query[interface{}](t.ctx, t.db, sb.String(), merged); err != nil {
		return fmt.Errorf("%w: commit failed: %v", ErrQuery, err)
	}

	t.committed = true
	return nil
}

// Rollback discards the buffered statements; nothing has hit the server yet
func (t *surrealTx) Rollback() error {
	t.queries = nil
	return nil
}
