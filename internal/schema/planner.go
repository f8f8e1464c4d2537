package schema

import (
	"context"
	"fmt"

	"github.com/vk/schemaorder/internal/ctxlog"
	"github.com/vk/schemaorder/internal/depgraph"
)

// OrderPlan is the result of planning a schema.
type OrderPlan struct {
	Schema string
	// CreateOrder lists referenced tables before the tables that reference them.
	CreateOrder []*Table
	// DropOrder is CreateOrder reversed: referencing tables first.
	DropOrder []*Table
	// DeferredForeignKeys close dependency cycles. They cannot be declared
	// inline when tables are created in CreateOrder and must be added once
	// all tables exist (and dropped before DropOrder runs).
	DeferredForeignKeys []*ForeignKey
}

// Plan computes the create and drop order of the tables in s.
//
// Each table becomes a node keyed by its normalized name; each foreign key
// becomes an edge "referencing table depends on referenced table".
// Self-references are skipped since they never constrain table order.
// A duplicate table name or a foreign key to a table missing from s aborts
// the plan with the calculator's error.
func Plan(ctx context.Context, s *Schema) (*OrderPlan, error) {
	ctx, logger := ctxlog.With(ctx, "schema", s.Name)

	calc := depgraph.New[*Table]()
	for _, t := range s.Tables {
		if err := calc.AddNode(Key(t.Name), t); err != nil {
			return nil, fmt.Errorf("failed to add table '%s': %w", t.Name, err)
		}
	}

	edges := 0
	for _, t := range s.Tables {
		for _, fk := range t.ForeignKeys {
			if fk.IsSelfReference() {
				logger.Debug("Skipping self-referencing foreign key.", "foreign_key", fk.String())
				continue
			}
			if err := calc.AddDependency(Key(t.Name), Key(fk.ReferencedTable)); err != nil {
				return nil, fmt.Errorf("failed to add foreign key %s: %w", fk, err)
			}
			edges++
		}
	}
	logger.Debug("Dependency graph populated.", "tables", calc.Len(), "edges", edges)

	dropOrder, err := calc.Sort()
	if err != nil {
		return nil, fmt.Errorf("failed to order tables of schema '%s': %w", s.Name, err)
	}

	createOrder := make([]*Table, len(dropOrder))
	for i, t := range dropOrder {
		createOrder[len(dropOrder)-1-i] = t
	}

	deferred := deferredForeignKeys(calc)
	if len(deferred) > 0 {
		logger.Debug("Foreign key cycles broken.", "deferred", len(deferred))
	}

	return &OrderPlan{
		Schema:              s.Name,
		CreateOrder:         createOrder,
		DropOrder:           dropOrder,
		DeferredForeignKeys: deferred,
	}, nil
}

// deferredForeignKeys maps the edges broken by the last sort back to the
// foreign keys that produced them.
func deferredForeignKeys(calc *depgraph.Calculator[*Table]) []*ForeignKey {
	var out []*ForeignKey
	seen := make(map[depgraph.Edge]struct{})
	for _, e := range calc.CycleEdges() {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}

		t, _ := calc.Payload(e.From)
		for _, fk := range t.ForeignKeys {
			if Key(fk.ReferencedTable) == e.To {
				out = append(out, fk)
			}
		}
	}
	return out
}

// Names returns the table names in order.
func Names(tables []*Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
