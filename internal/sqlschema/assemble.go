package sqlschema

import (
	"github.com/vk/schemaorder/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// columnRow is one catalog row describing a column.
type columnRow struct {
	Table    string
	Name     string
	Type     string
	Nullable bool
	// Default is the raw default expression, nil when none is declared.
	Default *string
}

// foreignKeyRow is one catalog row describing a single column pair of a
// foreign key. Rows of one constraint must be adjacent and ordered by
// position.
type foreignKeyRow struct {
	Constraint       string
	Table            string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	OnUpdate         string
	OnDelete         string
}

// assemble builds a schema from catalog rows. Tables keep the order of
// tableNames; rows for tables not in tableNames are ignored.
func assemble(name string, tableNames []string, columns []columnRow, fks []foreignKeyRow) *schema.Schema {
	s := &schema.Schema{Name: name}
	byName := make(map[string]*schema.Table, len(tableNames))
	for _, tn := range tableNames {
		t := &schema.Table{Name: tn}
		byName[tn] = t
		s.Tables = append(s.Tables, t)
	}

	for _, row := range columns {
		t, ok := byName[row.Table]
		if !ok {
			continue
		}
		col := &schema.Column{Name: row.Name, Type: row.Type, Nullable: row.Nullable}
		if row.Default != nil {
			v := cty.StringVal(*row.Default)
			col.Default = &v
		}
		t.Columns = append(t.Columns, col)
	}

	var current *schema.ForeignKey
	for _, row := range fks {
		t, ok := byName[row.Table]
		if !ok {
			continue
		}
		if current == nil || current.Table != row.Table || current.Name != row.Constraint {
			current = &schema.ForeignKey{
				Name:            row.Constraint,
				Table:           row.Table,
				ReferencedTable: row.ReferencedTable,
				OnUpdate:        row.OnUpdate,
				OnDelete:        row.OnDelete,
			}
			t.ForeignKeys = append(t.ForeignKeys, current)
		}
		current.Columns = append(current.Columns, row.Column)
		if row.ReferencedColumn != "" {
			current.ReferencedColumns = append(current.ReferencedColumns, row.ReferencedColumn)
		}
	}
	return s
}
