package app

import (
	"errors"

	"github.com/vk/schemaorder/internal/hclschema"
	"github.com/vk/schemaorder/internal/render"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SchemaPath is a file or directory for HCL, a DSN for database sources.
	SchemaPath string
	Source     string

	Format render.Format
	Order  render.Order

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.New("SchemaPath is a required configuration field and cannot be empty")
	}
	if cfg.Source == "" {
		cfg.Source = hclschema.Kind
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatText
	}
	if cfg.Order == "" {
		cfg.Order = render.OrderBoth
	}
	return &cfg, nil
}
