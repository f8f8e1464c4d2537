// Package hclschema loads schema definitions written in HCL.
//
// A location is a single .hcl file or a directory searched recursively for
// .hcl files. Every file may contribute table blocks and at most one schema
// name:
//
//	schema "shop" {}
//
//	table "orders" {
//	  column "id"          { type = "integer" }
//	  column "customer_id" {
//	    type     = "integer"
//	    nullable = true
//	  }
//	  foreign_key "fk_orders_customer" {
//	    columns            = ["customer_id"]
//	    references_table   = "customers"
//	    references_columns = ["id"]
//	    on_delete          = "cascade"
//	  }
//	}
//
// Tables keep the order in which they appear across files, which in turn
// seeds the deterministic ordering computed by schema.Plan.
package hclschema
