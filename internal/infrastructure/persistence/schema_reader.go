package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
)

type gormSchemaReader struct {
	db *gorm.DB
}

// NewGormSchemaReader creates a new SchemaReader that introspects the
// database catalog. Postgres reads information_schema; SQLite reads
// sqlite_master so local runs and tests can dump their schema too.
func NewGormSchemaReader(db *gorm.DB) (drift.SchemaReader, error) {
	return &gormSchemaReader{db: db}, nil
}

func (r *gormSchemaReader) ReadTables(ctx context.Context, schema string) ([]drift.TableSpec, error) {
	switch r.db.Dialector.Name() {
	case "postgres":
		return r.readPostgresTables(ctx, schema)
	case "sqlite":
		return r.readSQLiteTables(ctx)
	default:
		return nil, fmt.Errorf("unsupported dialect for schema introspection: %s", r.db.Dialector.Name())
	}
}

type columnRow struct {
	TableName  string
	ColumnName string
	DataType   string
	IsNullable string
}

func (r *gormSchemaReader) readPostgresTables(ctx context.Context, schema string) ([]drift.TableSpec, error) {
	if schema == "" {
		schema = "public"
	}

	var rows []columnRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.table_name, c.column_name, c.data_type, c.is_nullable
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE c.table_schema = ? AND t.table_type = 'BASE TABLE'
		ORDER BY c.table_name, c.ordinal_position`, schema).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read information_schema: %w", err)
	}

	return groupColumns(rows), nil
}

func (r *gormSchemaReader) readSQLiteTables(ctx context.Context) ([]drift.TableSpec, error) {
	var names []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`).
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read sqlite_master: %w", err)
	}

	var tables []drift.TableSpec
	for _, name := range names {
		var cols []struct {
			Name    string
			Type    string
			NotNull int
		}
		err := r.db.WithContext(ctx).Raw(
			`SELECT name, type, "notnull" AS not_null FROM pragma_table_info(?) ORDER BY cid`, name).
			Scan(&cols).Error
		if err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
		}

		spec := drift.TableSpec{Name: name}
		for _, col := range cols {
			spec.Columns = append(spec.Columns, drift.ColumnSpec{
				Name:     col.Name,
				DataType: col.Type,
				Nullable: col.NotNull == 0,
			})
		}
		tables = append(tables, spec)
	}

	return tables, nil
}

// groupColumns folds the flat information_schema rows into per-table specs,
// preserving the ordinal order the query established.
func groupColumns(rows []columnRow) []drift.TableSpec {
	var tables []drift.TableSpec
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.TableName]
		if !ok {
			tables = append(tables, drift.TableSpec{Name: row.TableName})
			i = len(tables) - 1
			index[row.TableName] = i
		}
		tables[i].Columns = append(tables[i].Columns, drift.ColumnSpec{
			Name:     row.ColumnName,
			DataType: row.DataType,
			Nullable: row.IsNullable == "YES",
		})
	}

	return tables
}
