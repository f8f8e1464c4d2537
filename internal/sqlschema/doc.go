// Package sqlschema introspects table and foreign key definitions from live
// database catalogs.
//
// SQLite is read through modernc.org/sqlite, MySQL through
// github.com/go-sql-driver/mysql and PostgreSQL through pgx. Each source
// only runs catalog queries; the rows are assembled into a schema.Schema in
// a stable order (tables by name, columns by ordinal position, foreign key
// columns by position) so repeated introspection of an unchanged database
// yields the same plan.
package sqlschema
