package database

// Multi-statement writes go through TxBuilder. The builder collects
// SurrealQL statements, renames their variables so statements from
// different call sites cannot collide ($name becomes $v1_name, $v2_name,
// ...), and wraps the whole batch in BEGIN/COMMIT TRANSACTION. Statements
// accumulate until Build; there is no isolation between Add calls.
//
//	tb := NewTxBuilder()
//	pulled := tb.Add("UPDATE region SET identities -= $name", pullVars)
//	tb.Add("CREATE identity CONTENT { name: $name }", createVars)
//	results, err := ExecuteTransaction(ctx, db, tb)
//
// The identity write paths depend on this: a create touches the region
// membership sets and the identity table in one round trip, so a failure
// anywhere rolls back everything.

import (
	"context"
	"fmt"
	"strings"
)

// TxBuilder accumulates statements for a single atomic transaction.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter int
}

// NewTxBuilder creates an empty transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		vars: make(map[string]interface{}),
	}
}

// Add appends a statement, renaming its variables to namespaced forms.
// The returned map records original name -> namespaced name so callers can
// refer back to their own variables if needed.
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	mapping := make(map[string]string, len(vars))
	renamed := query

	for name, value := range vars {
		tb.varCounter++
		namespaced := fmt.Sprintf("v%d_%s", tb.varCounter, name)

		renamed = strings.ReplaceAll(renamed, "$"+name, "$"+namespaced)
		tb.vars[namespaced] = value
		mapping[name] = namespaced
	}

	tb.statements = append(tb.statements, renamed)
	return mapping
}

// AddRaw appends a statement verbatim, with no variable renaming
func (tb *TxBuilder) AddRaw(query string) {
	tb.statements = append(tb.statements, query)
}

// Build assembles the transaction text and its merged variable set.
// An empty builder yields an empty query.
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// ExecuteTransaction runs the built transaction against the database.
// One result entry comes back per statement, in Add order. An empty
// builder is a no-op and never touches the database.
func ExecuteTransaction(ctx context.Context, db Database, tb *TxBuilder) ([]interface{}, error) {
	query, vars := tb.Build()
	if query == "" {
		return nil, nil
	}

	return db.Query(ctx, query, vars)
}
