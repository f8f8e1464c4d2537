package schema

import "context"

// Source loads a schema from a location. The meaning of location depends on
// the implementation: a file or directory path for HCL, a DSN for
// databases.
type Source interface {
	Load(ctx context.Context, location string) (*Schema, error)
}
