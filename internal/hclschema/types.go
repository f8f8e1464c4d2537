package hclschema

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every file. Unknown blocks are left in Remain.
type fileRoot struct {
	Schemas []*SchemaBlock `hcl:"schema,block"`
	Tables  []*TableBlock  `hcl:"table,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// SchemaBlock names the schema.
type SchemaBlock struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

// TableBlock maps a `table` block.
type TableBlock struct {
	Name        string             `hcl:"name,label"`
	Columns     []*ColumnBlock     `hcl:"column,block"`
	ForeignKeys []*ForeignKeyBlock `hcl:"foreign_key,block"`
}

// ColumnBlock maps a `column` block.
type ColumnBlock struct {
	Name     string         `hcl:"name,label"`
	Type     string         `hcl:"type"`
	Nullable *bool          `hcl:"nullable,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
}

// ForeignKeyBlock maps a `foreign_key` block.
type ForeignKeyBlock struct {
	Name              string   `hcl:"name,label"`
	Columns           []string `hcl:"columns"`
	ReferencesTable   string   `hcl:"references_table"`
	ReferencesColumns []string `hcl:"references_columns,optional"`
	OnDelete          string   `hcl:"on_delete,optional"`
	OnUpdate          string   `hcl:"on_update,optional"`
}
