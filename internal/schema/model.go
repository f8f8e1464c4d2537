package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Schema is a named collection of tables.
type Schema struct {
	Name   string
	Tables []*Table
}

// Table is a single table with its columns and outgoing foreign keys.
type Table struct {
	Name        string
	Columns     []*Column
	ForeignKeys []*ForeignKey
}

// Column describes a table column. Default is nil when the column has no
// declared default.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  *cty.Value
}

// ForeignKey references ReferencedTable from Table.
type ForeignKey struct {
	Name              string
	Table             string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          string
	OnUpdate          string
}

// String renders the key as "name (table -> referenced)".
func (fk *ForeignKey) String() string {
	name := fk.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s (%s -> %s)", name, fk.Table, fk.ReferencedTable)
}

// IsSelfReference reports whether the key points back at its own table.
func (fk *ForeignKey) IsSelfReference() bool {
	return Key(fk.Table) == Key(fk.ReferencedTable)
}

// Key normalizes a table name into the identifier used for lookups and
// graph nodes. Table names compare case-insensitively.
func Key(name string) string {
	return strings.ToLower(name)
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	key := Key(name)
	for _, t := range s.Tables {
		if Key(t.Name) == key {
			return t, true
		}
	}
	return nil, false
}

// Validate checks the structural integrity of every table. Duplicate tables
// and dangling references are reported by Plan instead.
func (s *Schema) Validate() error {
	var errs []error
	for i, t := range s.Tables {
		if t == nil || t.Name == "" {
			errs = append(errs, fmt.Errorf("table #%d has no name", i))
			continue
		}
		seen := make(map[string]struct{}, len(t.Columns))
		for _, c := range t.Columns {
			key := strings.ToLower(c.Name)
			if _, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("table '%s': duplicate column '%s'", t.Name, c.Name))
			}
			seen[key] = struct{}{}
		}
		for _, fk := range t.ForeignKeys {
			if fk.ReferencedTable == "" {
				errs = append(errs, fmt.Errorf("table '%s': foreign key %s has no referenced table", t.Name, fk))
				continue
			}
			if len(fk.ReferencedColumns) > 0 && len(fk.Columns) != len(fk.ReferencedColumns) {
				errs = append(errs, fmt.Errorf("table '%s': foreign key %s maps %d columns to %d",
					t.Name, fk, len(fk.Columns), len(fk.ReferencedColumns)))
			}
		}
	}
	return errors.Join(errs...)
}
