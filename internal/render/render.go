// Package render writes an order plan as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/schemaorder/internal/schema"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Order selects which orders are written.
type Order string

const (
	OrderCreate Order = "create"
	OrderDrop   Order = "drop"
	OrderBoth   Order = "both"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'text', 'json' or 'yaml'", s)
	}
}

// ParseOrder validates an order name.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case OrderCreate, OrderDrop, OrderBoth:
		return o, nil
	default:
		return "", fmt.Errorf("invalid order '%s': must be 'create', 'drop' or 'both'", s)
	}
}

// Options controls Write.
type Options struct {
	Format Format
	Order  Order
}

// document is the serialized form of a plan.
type document struct {
	Schema   string        `json:"schema" yaml:"schema"`
	Create   []string      `json:"create,omitempty" yaml:"create,omitempty"`
	Drop     []string      `json:"drop,omitempty" yaml:"drop,omitempty"`
	Deferred []deferredKey `json:"deferred_foreign_keys,omitempty" yaml:"deferred_foreign_keys,omitempty"`
}

type deferredKey struct {
	Name              string   `json:"name" yaml:"name"`
	Table             string   `json:"table" yaml:"table"`
	Columns           []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	ReferencedTable   string   `json:"referenced_table" yaml:"referenced_table"`
	ReferencedColumns []string `json:"referenced_columns,omitempty" yaml:"referenced_columns,omitempty"`
}

func newDocument(plan *schema.OrderPlan, order Order) document {
	doc := document{Schema: plan.Schema}
	if order == OrderCreate || order == OrderBoth {
		doc.Create = schema.Names(plan.CreateOrder)
	}
	if order == OrderDrop || order == OrderBoth {
		doc.Drop = schema.Names(plan.DropOrder)
	}
	for _, fk := range plan.DeferredForeignKeys {
		doc.Deferred = append(doc.Deferred, deferredKey{
			Name:              fk.Name,
			Table:             fk.Table,
			Columns:           fk.Columns,
			ReferencedTable:   fk.ReferencedTable,
			ReferencedColumns: fk.ReferencedColumns,
		})
	}
	return doc
}

// Write renders plan to w.
func Write(w io.Writer, plan *schema.OrderPlan, opts Options) error {
	if opts.Order == "" {
		opts.Order = OrderBoth
	}
	doc := newDocument(plan, opts.Order)

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, doc)
	default:
		return fmt.Errorf("unsupported format '%s'", opts.Format)
	}
}

func writeText(w io.Writer, doc document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Schema: %s\n", doc.Schema)
	writeList(&b, "Create order", doc.Create)
	writeList(&b, "Drop order", doc.Drop)
	if len(doc.Deferred) > 0 {
		b.WriteString("\nDeferred foreign keys:\n")
		for _, fk := range doc.Deferred {
			fmt.Fprintf(&b, "  - %s (%s -> %s)\n", fk.Name, fk.Table, fk.ReferencedTable)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, names []string) {
	if names == nil {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for i, name := range names {
		fmt.Fprintf(b, "  %d. %s\n", i+1, name)
	}
}
