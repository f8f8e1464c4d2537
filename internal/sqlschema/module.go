package sqlschema

import (
	"github.com/vk/schemaorder/internal/registry"
	"github.com/vk/schemaorder/internal/schema"
)

// Module registers the database catalog sources.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterSource(KindSQLite, func() schema.Source { return &SQLite{} })
	r.RegisterSource(KindMySQL, func() schema.Source { return &MySQL{} })
	r.RegisterSource(KindPostgres, func() schema.Source { return &Postgres{} })
}
