package app

import (
	"github.com/vk/schemaorder/internal/hclschema"
	"github.com/vk/schemaorder/internal/registry"
	"github.com/vk/schemaorder/internal/sqlschema"
)

// coreModules is the definitive list of schema sources compiled into the
// schemaorder binary.
var coreModules = []registry.Module{
	hclschema.Module{},
	sqlschema.Module{},
}
