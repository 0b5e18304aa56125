package drift

import (
	"context"
)

// DriftService defines methods for comparing the live database schema against
// the expected catalog.
type DriftService interface {
	// Check introspects the live schema and compares it with the catalog.
	Check(ctx context.Context) (*Drift, error)

	// Dump returns the live schema as read from the database.
	Dump(ctx context.Context) ([]TableSpec, error)
}

// SchemaReader introspects the live database catalog.
type SchemaReader interface {
	// ReadTables returns every base table in the schema with its columns in
	// ordinal order. Data types come back in the vendor's spelling.
	ReadTables(ctx context.Context, schema string) ([]TableSpec, error)
}
