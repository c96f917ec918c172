// Package migration holds the ledger schema and applies it.
package migration

import (
	"context"
	_ "embed"
	"fmt"

	"menurate/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL applied by Apply.
func Schema() string {
	return schemaSQL
}

// Apply creates the ledger tables if they do not exist. It is idempotent.
func Apply(ctx context.Context, db database.Querier) error {
	// no arguments, so pgx sends the script over the simple protocol in one round trip
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
