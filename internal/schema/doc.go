// Package schema defines the format-agnostic schema model (tables, columns
// and foreign keys) and plans the order in which tables are created and
// dropped.
//
// Schemas come from a Source: an HCL file (see hclschema) or a live database
// catalog (see sqlschema). Plan feeds one node per table and one dependency
// edge per foreign key into a depgraph.Calculator and derives both orders
// from a single sort, so repeated runs against the same schema always
// produce the same DDL ordering.
package schema
