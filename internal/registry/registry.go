package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/schemaorder/internal/schema"
)

// Factory constructs a new, unconnected schema source.
type Factory func() schema.Source

// Module is the interface that all source packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the source factories for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// RegisterSource binds kind to factory. Registering the same kind twice is a
// programmer error and panics.
func (r *Registry) RegisterSource(kind string, factory Factory) {
	kind = strings.ToLower(kind)
	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("schema source '%s' already registered", kind))
	}
	slog.Debug("Registering schema source.", "kind", kind)
	r.factories[kind] = factory
}

// Lookup returns a new source for kind.
func (r *Registry) Lookup(kind string) (schema.Source, error) {
	factory, ok := r.factories[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("unknown schema source '%s' (known: %s)", kind, strings.Join(r.Kinds(), ", "))
	}
	return factory(), nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
