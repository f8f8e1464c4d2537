package sqlschema

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/schemaorder/internal/ctxlog"
	"github.com/vk/schemaorder/internal/schema"
	_ "modernc.org/sqlite"
)

const (
	// KindSQLite is the registry key of the SQLite source.
	KindSQLite = "sqlite"

	driverSQLite = "sqlite"
)

// SQLite reads a schema from a SQLite database file.
type SQLite struct{}

// Load opens the database at dsn and introspects it. The schema is named
// after the database file.
func (s *SQLite) Load(ctx context.Context, dsn string) (*schema.Schema, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}
	db, err := sql.Open(driverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	defer db.Close()
	// One connection keeps in-memory databases visible across queries.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}
	return s.Introspect(ctx, db, sqliteName(dsn))
}

// Introspect reads the schema through an open handle.
func (s *SQLite) Introspect(ctx context.Context, db *sql.DB, name string) (*schema.Schema, error) {
	ctx, logger := ctxlog.With(ctx, "source", KindSQLite, "schema", name)

	tables, err := queryStrings(ctx, db,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list tables: %w", err)
	}
	logger.Debug("Listed tables.", "count", len(tables))

	var columns []columnRow
	var fks []foreignKeyRow
	for _, table := range tables {
		cols, err := sqliteColumns(ctx, db, table)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to read columns of '%s': %w", table, err)
		}
		columns = append(columns, cols...)

		keys, err := sqliteForeignKeys(ctx, db, table)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to read foreign keys of '%s': %w", table, err)
		}
		fks = append(fks, keys...)
	}
	logger.Debug("Introspection complete.", "columns", len(columns), "foreign_key_columns", len(fks))

	return assemble(name, tables, columns, fks), nil
}

func sqliteColumns(ctx context.Context, db *sql.DB, table string) ([]columnRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, type, "notnull", dflt_value FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []columnRow
	for rows.Next() {
		var (
			row     = columnRow{Table: table}
			notNull bool
			def     sql.NullString
		)
		if err := rows.Scan(&row.Name, &row.Type, &notNull, &def); err != nil {
			return nil, err
		}
		row.Nullable = !notNull
		if def.Valid {
			row.Default = &def.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func sqliteForeignKeys(ctx context.Context, db *sql.DB, table string) ([]foreignKeyRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, "table", "from", "to", on_update, on_delete FROM pragma_foreign_key_list(?) ORDER BY id, seq`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []foreignKeyRow
	for rows.Next() {
		var (
			id  int
			row = foreignKeyRow{Table: table}
			to  sql.NullString
		)
		if err := rows.Scan(&id, &row.ReferencedTable, &row.Column, &to, &row.OnUpdate, &row.OnDelete); err != nil {
			return nil, err
		}
		// SQLite constraints are anonymous in the catalog.
		row.Constraint = fmt.Sprintf("fk_%s_%d", table, id)
		row.ReferencedColumn = to.String
		out = append(out, row)
	}
	return out, rows.Err()
}

// sqliteName derives the schema name from a file DSN such as
// "file:shop.db?mode=ro" or "/var/data/shop.sqlite".
func sqliteName(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return "main"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// queryStrings runs a query returning a single string column.
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
