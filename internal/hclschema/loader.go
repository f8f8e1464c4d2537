package hclschema

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/schemaorder/internal/ctxlog"
	"github.com/vk/schemaorder/internal/fsutil"
	"github.com/vk/schemaorder/internal/registry"
	"github.com/vk/schemaorder/internal/schema"
)

// Kind is the registry key of the HCL source.
const Kind = "hcl"

// Module registers the HCL source.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterSource(Kind, func() schema.Source { return NewLoader() })
}

// Loader is the HCL implementation of schema.Source.
type Loader struct{}

// NewLoader creates a new HCL schema loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under path and translates the declared tables
// into a schema model.
func (l *Loader) Load(ctx context.Context, path string) (*schema.Schema, error) {
	ctx, logger := ctxlog.With(ctx, "source", Kind, "path", path)
	logger.Debug("HCL schema loader started.")

	files, err := fsutil.FindFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %s", path)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	out := &schema.Schema{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, sb := range root.Schemas {
			if out.Name != "" && out.Name != sb.Name {
				return nil, fmt.Errorf("%s: schema '%s' conflicts with previously declared schema '%s'", file, sb.Name, out.Name)
			}
			out.Name = sb.Name
		}
		for _, tb := range root.Tables {
			t, err := translateTable(ctx, tb)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			out.Tables = append(out.Tables, t)
		}
	}

	if out.Name == "" {
		out.Name = defaultName(path)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema '%s': %w", out.Name, err)
	}

	logger.Debug("HCL schema loading complete.", "schema", out.Name, "tables", len(out.Tables))
	return out, nil
}

// defaultName derives a schema name from the location when no schema block
// is present.
func defaultName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
