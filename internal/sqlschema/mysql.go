package sqlschema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/vk/schemaorder/internal/ctxlog"
	"github.com/vk/schemaorder/internal/schema"
)

// KindMySQL is the registry key of the MySQL source.
const KindMySQL = "mysql"

const (
	mysqlTablesQuery = `
SELECT TABLE_NAME
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`

	mysqlColumnsQuery = `
SELECT TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE = 'YES', COLUMN_DEFAULT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`

	// Foreign keys into other databases are excluded: they cannot affect
	// the order of tables within this one.
	mysqlForeignKeysQuery = `
SELECT k.CONSTRAINT_NAME, k.TABLE_NAME, k.COLUMN_NAME,
       k.REFERENCED_TABLE_NAME, k.REFERENCED_COLUMN_NAME,
       r.UPDATE_RULE, r.DELETE_RULE
FROM information_schema.KEY_COLUMN_USAGE k
JOIN information_schema.REFERENTIAL_CONSTRAINTS r
  ON r.CONSTRAINT_SCHEMA = k.CONSTRAINT_SCHEMA
 AND r.CONSTRAINT_NAME = k.CONSTRAINT_NAME
 AND r.TABLE_NAME = k.TABLE_NAME
WHERE k.TABLE_SCHEMA = ?
  AND k.REFERENCED_TABLE_SCHEMA = k.TABLE_SCHEMA
ORDER BY k.TABLE_NAME, k.CONSTRAINT_NAME, k.ORDINAL_POSITION`
)

// MySQL reads a schema from the database named in a MySQL DSN.
type MySQL struct{}

// Load connects with dsn (go-sql-driver format, e.g.
// "user:pass@tcp(localhost:3306)/shop") and introspects its database.
func (m *MySQL) Load(ctx context.Context, dsn string) (*schema.Schema, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: invalid DSN: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("mysql: DSN must name a database")
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to create connector: %w", err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql: failed to ping database: %w", err)
	}
	return m.Introspect(ctx, db, cfg.DBName)
}

// Introspect reads database name through an open handle.
func (m *MySQL) Introspect(ctx context.Context, db *sql.DB, name string) (*schema.Schema, error) {
	ctx, logger := ctxlog.With(ctx, "source", KindMySQL, "schema", name)

	tables, err := queryStrings(ctx, db, mysqlTablesQuery, name)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to list tables: %w", err)
	}

	columns, err := mysqlColumns(ctx, db, name)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to read columns: %w", err)
	}

	fks, err := mysqlForeignKeys(ctx, db, name)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to read foreign keys: %w", err)
	}
	logger.Debug("Introspection complete.", "tables", len(tables), "columns", len(columns), "foreign_key_columns", len(fks))

	return assemble(name, tables, columns, fks), nil
}

func mysqlColumns(ctx context.Context, db *sql.DB, name string) ([]columnRow, error) {
	rows, err := db.QueryContext(ctx, mysqlColumnsQuery, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []columnRow
	for rows.Next() {
		var (
			row columnRow
			def sql.NullString
		)
		if err := rows.Scan(&row.Table, &row.Name, &row.Type, &row.Nullable, &def); err != nil {
			return nil, err
		}
		if def.Valid {
			row.Default = &def.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func mysqlForeignKeys(ctx context.Context, db *sql.DB, name string) ([]foreignKeyRow, error) {
	rows, err := db.QueryContext(ctx, mysqlForeignKeysQuery, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []foreignKeyRow
	for rows.Next() {
		var row foreignKeyRow
		if err := rows.Scan(&row.Constraint, &row.Table, &row.Column,
			&row.ReferencedTable, &row.ReferencedColumn, &row.OnUpdate, &row.OnDelete); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
