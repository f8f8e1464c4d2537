package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/schemaorder/internal/schema"
	"gopkg.in/yaml.v3"
)

func testPlan() *schema.OrderPlan {
	departments := &schema.Table{Name: "departments"}
	employees := &schema.Table{Name: "employees"}
	return &schema.OrderPlan{
		Schema:      "hr",
		CreateOrder: []*schema.Table{departments, employees},
		DropOrder:   []*schema.Table{employees, departments},
		DeferredForeignKeys: []*schema.ForeignKey{{
			Name:              "fk_departments_manager",
			Table:             "departments",
			Columns:           []string{"manager_id"},
			ReferencedTable:   "employees",
			ReferencedColumns: []string{"id"},
		}},
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testPlan(), Options{Format: FormatText, Order: OrderBoth}))

	want := `Schema: hr

Create order:
  1. departments
  2. employees

Drop order:
  1. employees
  2. departments

Deferred foreign keys:
  - fk_departments_manager (departments -> employees)
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_TextCreateOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testPlan(), Options{Order: OrderCreate}))

	assert.Contains(t, buf.String(), "Create order:")
	assert.NotContains(t, buf.String(), "Drop order:")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testPlan(), Options{Format: FormatJSON, Order: OrderDrop}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hr", got["schema"])
	assert.Equal(t, []any{"employees", "departments"}, got["drop"])
	assert.NotContains(t, got, "create")

	deferred, ok := got["deferred_foreign_keys"].([]any)
	require.True(t, ok)
	require.Len(t, deferred, 1)
	assert.Equal(t, "fk_departments_manager", deferred[0].(map[string]any)["name"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testPlan(), Options{Format: FormatYAML}))

	var got document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hr", got.Schema)
	assert.Equal(t, []string{"departments", "employees"}, got.Create)
	assert.Equal(t, []string{"employees", "departments"}, got.Drop)
	require.Len(t, got.Deferred, 1)
	assert.Equal(t, "employees", got.Deferred[0].ReferencedTable)
}

func TestWrite_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &schema.OrderPlan{Schema: "empty"}, Options{Format: FormatText}))
	assert.Equal(t, "Schema: empty\n\nCreate order:\n\nDrop order:\n", buf.String())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, testPlan(), Options{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported format 'xml'")
}

func TestParse(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("csv")
	assert.ErrorContains(t, err, "invalid format 'csv'")

	o, err := ParseOrder("drop")
	require.NoError(t, err)
	assert.Equal(t, OrderDrop, o)

	_, err = ParseOrder("sideways")
	assert.ErrorContains(t, err, "invalid order 'sideways'")
}
