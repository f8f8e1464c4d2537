package hclschema

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/schemaorder/internal/ctxlog"
	"github.com/vk/schemaorder/internal/schema"
)

// translateTable converts a decoded table block into the schema model.
func translateTable(ctx context.Context, tb *TableBlock) (*schema.Table, error) {
	ctx, logger := ctxlog.With(ctx, "table", tb.Name)
	logger.Debug("Translating HCL table.", "columns", len(tb.Columns), "foreign_keys", len(tb.ForeignKeys))

	t := &schema.Table{Name: tb.Name}
	for _, cb := range tb.Columns {
		col, err := translateColumn(ctx, cb)
		if err != nil {
			return nil, fmt.Errorf("table '%s': %w", tb.Name, err)
		}
		t.Columns = append(t.Columns, col)
	}
	for _, fb := range tb.ForeignKeys {
		t.ForeignKeys = append(t.ForeignKeys, &schema.ForeignKey{
			Name:              fb.Name,
			Table:             tb.Name,
			Columns:           fb.Columns,
			ReferencedTable:   fb.ReferencesTable,
			ReferencedColumns: fb.ReferencesColumns,
			OnDelete:          fb.OnDelete,
			OnUpdate:          fb.OnUpdate,
		})
	}
	return t, nil
}

// translateColumn converts a column block, evaluating its default value.
// An explicit `default = null` is treated the same as no default.
func translateColumn(ctx context.Context, cb *ColumnBlock) (*schema.Column, error) {
	col := &schema.Column{Name: cb.Name, Type: cb.Type}
	if cb.Nullable != nil {
		col.Nullable = *cb.Nullable
	}

	if isExprDefined(ctx, cb.Default, "default") {
		val, diags := cb.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for column '%s': %w", cb.Name, diags)
		}
		if !val.IsNull() {
			col.Default = &val
		}
	}
	return col, nil
}

// isExprDefined reports whether an optional expression was written in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}
