package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// ChangeChannel is the LISTEN/NOTIFY channel fed by the table triggers in schema.sql.
const ChangeChannel = "table_changes"

//go:embed schema.sql
var schema string

// Migrate applies the idempotent schema, including the change-notification triggers.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
