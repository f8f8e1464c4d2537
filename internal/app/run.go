package app

import (
	"context"
	"fmt"

	"github.com/vk/schemaorder/internal/render"
	"github.com/vk/schemaorder/internal/schema"
)

// Run loads the configured schema, plans its table order and writes the
// result. Any error aborts the run before output is written.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "source", a.config.Source)

	src, err := a.registry.Lookup(a.config.Source)
	if err != nil {
		return err
	}

	s, err := src.Load(ctx, a.config.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	a.logger.Info("Schema loaded.", "schema", s.Name, "tables", len(s.Tables))

	plan, err := schema.Plan(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to plan schema: %w", err)
	}
	if n := len(plan.DeferredForeignKeys); n > 0 {
		a.logger.Warn("Circular foreign keys found; they must be added after table creation.", "count", n)
	}

	if err := render.Write(a.outW, plan, render.Options{Format: a.config.Format, Order: a.config.Order}); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
