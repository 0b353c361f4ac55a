package repository

import (
	"context"
	"reflect"

	"github.com/ravenhold/realm-api/internal/database"
)

// fakeDB records every query and its variables so tests can assert on the
// SurrealQL the repositories emit. Canned results are returned in call
// order.
type fakeDB struct {
	queries []string
	vars    []map[string]interface{}

	queryResults   [][]interface{}
	queryErr       error
	queryOneResult interface{}
	queryOneErr    error
	execErr        error
	txExecErr      error

	tx *fakeTx
}

func (f *fakeDB) Connect(ctx context.Context) error { return nil }
func (f *fakeDB) Close() error                      { return nil }
func (f *fakeDB) Ping(ctx context.Context) error    { return nil }

func (f *fakeDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	f.queries = append(f.queries, query)
	f.vars = append(f.vars, vars)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.queryResults) == 0 {
		return nil, nil
	}
	result := f.queryResults[0]
	f.queryResults = f.queryResults[1:]
	return result, nil
}

func (f *fakeDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	f.queries = append(f.queries, query)
	f.vars = append(f.vars, vars)
	return f.queryOneResult, f.queryOneErr
}

func (f *fakeDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	f.queries = append(f.queries, query)
	f.vars = append(f.vars, vars)
	return f.execErr
}

func (f *fakeDB) BeginTx(ctx context.Context) (database.Transaction, error) {
	f.tx = &fakeTx{execErr: f.txExecErr}
	return f.tx, nil
}

// fakeTx records the statements executed inside a transaction
type fakeTx struct {
	queries    []string
	vars       []map[string]interface{}
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	t.queries = append(t.queries, query)
	t.vars = append(t.vars, vars)
	return nil, nil
}

func (t *fakeTx) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	t.queries = append(t.queries, query)
	t.vars = append(t.vars, vars)
	return nil, nil
}

func (t *fakeTx) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	t.queries = append(t.queries, query)
	t.vars = append(t.vars, vars)
	return t.execErr
}

func (t *fakeTx) Commit() error   { t.committed = true; return nil }
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

// varValues flattens a variable map to its values; TxBuilder renames the
// keys, so assertions work on values
func varValues(vars map[string]interface{}) map[interface{}]bool {
	out := make(map[interface{}]bool, len(vars))
	for _, v := range vars {
		if v != nil && !reflect.TypeOf(v).Comparable() {
			continue
		}
		out[v] = true
	}
	return out
}

// okResult wraps rows in the response envelope the SurrealDB client returns
func okResult(rows ...interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "result": rows}
}
