package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/schemaorder/internal/render"
)

func TestParse_Defaults(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{"schema.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "schema.hcl", cfg.SchemaPath)
	assert.Equal(t, "hcl", cfg.Source)
	assert.Equal(t, render.FormatText, cfg.Format)
	assert.Equal(t, render.OrderBoth, cfg.Order)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_AllFlags(t *testing.T) {
	args := []string{
		"--schema", "file:shop.db",
		"--source", "SQLite",
		"--format", "yaml",
		"--order", "drop",
		"--log-format", "json",
		"--log-level", "DEBUG",
	}
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "file:shop.db", cfg.SchemaPath)
	assert.Equal(t, "sqlite", cfg.Source)
	assert.Equal(t, render.FormatYAML, cfg.Format)
	assert.Equal(t, render.OrderDrop, cfg.Order)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_PathPrecedence(t *testing.T) {
	cfg, _, err := Parse([]string{"-s", "short.hcl", "positional.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "short.hcl", cfg.SchemaPath)

	cfg, _, err = Parse([]string{"--schema", "long.hcl", "-s", "short.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "long.hcl", cfg.SchemaPath)
}

func TestParse_DSNFromEnvironment(t *testing.T) {
	t.Setenv(dsnEnv, "postgres://localhost/shop")

	cfg, shouldExit, err := Parse([]string{"--source", "postgres"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "postgres://localhost/shop", cfg.SchemaPath)

	// The environment is never consulted for HCL paths.
	out := &bytes.Buffer{}
	cfg, shouldExit, err = Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "SCHEMAORDER_DSN")
}

func TestParse_InvalidArguments(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"--nope", "x.hcl"}, "flag provided but not defined"},
		{"bad format", []string{"--format", "xml", "x.hcl"}, "invalid format 'xml'"},
		{"bad order", []string{"--order", "up", "x.hcl"}, "invalid order 'up'"},
		{"bad log format", []string{"--log-format", "xml", "x.hcl"}, "invalid log-format"},
		{"bad log level", []string{"--log-level", "trace", "x.hcl"}, "invalid log-level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
