package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/schemaorder/internal/app"
	"github.com/vk/schemaorder/internal/render"
	"github.com/vk/schemaorder/internal/testutil"
	"gopkg.in/yaml.v3"
)

const cyclicHCL = `
	schema "tenancy" {}

	table "users" {
	  column "team_id" {
	    type = "integer"
	  }
	  foreign_key "fk_users_team" {
	    columns          = ["team_id"]
	    references_table = "teams"
	  }
	}

	table "teams" {
	  column "organization_id" {
	    type = "integer"
	  }
	  foreign_key "fk_teams_organization" {
	    columns          = ["organization_id"]
	    references_table = "organizations"
	  }
	}

	table "organizations" {
	  column "founder_id" {
	    type = "integer"
	  }
	  foreign_key "fk_organizations_founder" {
	    columns            = ["founder_id"]
	    references_table   = "users"
	    references_columns = ["id"]
	  }
	}

	table "audit_log" {
	  column "user_id" {
	    type = "integer"
	  }
	  foreign_key "fk_audit_user" {
	    columns          = ["user_id"]
	    references_table = "users"
	  }
	}
`

func TestCycles_ClosingForeignKeyIsDeferred(t *testing.T) {
	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": cyclicHCL}, app.Config{SchemaPath: "main.hcl"})

	// --- Assert ---
	require.NoError(t, result.Err, "cycles must never fail a run")
	want := `Schema: tenancy

Create order:
  1. organizations
  2. teams
  3. users
  4. audit_log

Drop order:
  1. audit_log
  2. users
  3. teams
  4. organizations

Deferred foreign keys:
  - fk_organizations_founder (organizations -> users)
`
	assert.Equal(t, want, result.Output)
	assert.Contains(t, result.LogOutput, "Circular foreign keys found")
}

func TestCycles_YAMLOutput(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": cyclicHCL}, app.Config{
		SchemaPath: "main.hcl",
		Format:     render.FormatYAML,
		Order:      render.OrderDrop,
	})
	require.NoError(t, result.Err)

	var doc struct {
		Schema   string   `yaml:"schema"`
		Create   []string `yaml:"create"`
		Drop     []string `yaml:"drop"`
		Deferred []struct {
			Name              string   `yaml:"name"`
			Table             string   `yaml:"table"`
			Columns           []string `yaml:"columns"`
			ReferencedTable   string   `yaml:"referenced_table"`
			ReferencedColumns []string `yaml:"referenced_columns"`
		} `yaml:"deferred_foreign_keys"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &doc))

	assert.Equal(t, "tenancy", doc.Schema)
	assert.Nil(t, doc.Create)
	assert.Equal(t, []string{"audit_log", "users", "teams", "organizations"}, doc.Drop)
	require.Len(t, doc.Deferred, 1)
	assert.Equal(t, "fk_organizations_founder", doc.Deferred[0].Name)
	assert.Equal(t, "organizations", doc.Deferred[0].Table)
	assert.Equal(t, []string{"founder_id"}, doc.Deferred[0].Columns)
	assert.Equal(t, "users", doc.Deferred[0].ReferencedTable)
	assert.Equal(t, []string{"id"}, doc.Deferred[0].ReferencedColumns)
}

func TestCycles_SelfReferenceIsNotDeferred(t *testing.T) {
	files := map[string]string{
		"main.hcl": `
			table "categories" {
			  column "id" {
			    type = "integer"
			  }
			  column "parent_id" {
			    type     = "integer"
			    nullable = true
			  }
			  foreign_key "fk_categories_parent" {
			    columns          = ["parent_id"]
			    references_table = "categories"
			  }
			}
		`,
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{SchemaPath: "main.hcl"})

	require.NoError(t, result.Err)
	assert.NotContains(t, result.Output, "Deferred foreign keys")
	assert.Contains(t, result.LogOutput, "Skipping self-referencing foreign key.")
	assert.NotContains(t, result.LogOutput, "Circular foreign keys found")
}
