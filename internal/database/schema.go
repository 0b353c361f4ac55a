package database

import (
	"context"
	"fmt"
)

// schemaStatements define the indexes the write paths rely on. Uniqueness is
// enforced here rather than by read-then-write checks alone, so concurrent
// creates cannot race past each other. All statements are idempotent.
var schemaStatements = []string{
	`DEFINE INDEX IF NOT EXISTS idx_user_user_id ON TABLE user COLUMNS user_id UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS idx_entity_name ON TABLE entity COLUMNS name UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS idx_region_name ON TABLE region COLUMNS name UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS idx_identity_name ON TABLE identity COLUMNS name UNIQUE`,
}

// ApplySchema applies index definitions at startup
func ApplySchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("apply schema %q: %w", stmt, err)
		}
	}
	return nil
}
