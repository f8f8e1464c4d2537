package sqlschema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/schemaorder/internal/schema"
)

func TestAssemble(t *testing.T) {
	def := "0"
	columns := []columnRow{
		{Table: "accounts", Name: "id", Type: "int"},
		{Table: "transfers", Name: "from_id", Type: "int"},
		{Table: "transfers", Name: "to_id", Type: "int"},
		{Table: "transfers", Name: "amount", Type: "numeric", Default: &def},
		{Table: "views_are_ignored", Name: "x", Type: "int"},
	}
	fks := []foreignKeyRow{
		{Constraint: "fk_from", Table: "transfers", Column: "from_id", ReferencedTable: "accounts", ReferencedColumn: "id", OnDelete: "RESTRICT"},
		{Constraint: "fk_pair", Table: "transfers", Column: "from_id", ReferencedTable: "pairs", ReferencedColumn: "a"},
		{Constraint: "fk_pair", Table: "transfers", Column: "to_id", ReferencedTable: "pairs", ReferencedColumn: "b"},
	}

	s := assemble("bank", []string{"accounts", "pairs", "transfers"}, columns, fks)

	assert.Equal(t, "bank", s.Name)
	assert.Equal(t, []string{"accounts", "pairs", "transfers"}, schema.Names(s.Tables))

	transfers, ok := s.Table("transfers")
	require.True(t, ok)
	require.Len(t, transfers.Columns, 3)
	require.NotNil(t, transfers.Columns[2].Default)
	assert.Equal(t, "0", transfers.Columns[2].Default.AsString())

	want := []*schema.ForeignKey{
		{Name: "fk_from", Table: "transfers", Columns: []string{"from_id"}, ReferencedTable: "accounts", ReferencedColumns: []string{"id"}, OnDelete: "RESTRICT"},
		{Name: "fk_pair", Table: "transfers", Columns: []string{"from_id", "to_id"}, ReferencedTable: "pairs", ReferencedColumns: []string{"a", "b"}},
	}
	if diff := cmp.Diff(want, transfers.ForeignKeys); diff != "" {
		t.Errorf("foreign keys mismatch (-want +got):\n%s", diff)
	}
}

func TestPgAction(t *testing.T) {
	assert.Equal(t, "NO ACTION", pgAction("a"))
	assert.Equal(t, "RESTRICT", pgAction("r"))
	assert.Equal(t, "CASCADE", pgAction("c"))
	assert.Equal(t, "SET NULL", pgAction("n"))
	assert.Equal(t, "SET DEFAULT", pgAction("d"))
	assert.Equal(t, "x", pgAction("x"))
}

func TestSearchPathSchema(t *testing.T) {
	assert.Equal(t, "public", searchPathSchema(""))
	assert.Equal(t, "public", searchPathSchema(`"$user", public`))
	assert.Equal(t, "sales", searchPathSchema("sales,public"))
	assert.Equal(t, "Billing", searchPathSchema(` "Billing" `))
}
