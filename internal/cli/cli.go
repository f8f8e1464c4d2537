package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/schemaorder/internal/app"
	"github.com/vk/schemaorder/internal/hclschema"
	"github.com/vk/schemaorder/internal/render"
)

// dsnEnv supplies the DSN for database sources when no path is given.
const dsnEnv = "SCHEMAORDER_DSN"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("schemaorder", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
schemaorder - Orders tables for DDL creation and drop by their foreign keys.

Usage:
  schemaorder [options] [SCHEMA]

Arguments:
  SCHEMA
    For --source=hcl, a .hcl file or a directory containing .hcl files.
    For database sources, a DSN (falls back to $%s).

Options:
`, dsnEnv)
		flagSet.PrintDefaults()
	}

	schemaFlag := flagSet.String("schema", "", "Path to the schema file/directory, or a database DSN.")
	sFlag := flagSet.String("s", "", "Path to the schema file/directory, or a database DSN (shorthand).")
	sourceFlag := flagSet.String("source", hclschema.Kind, "Schema source. Options: 'hcl', 'sqlite', 'postgres', 'mysql'.")
	formatFlag := flagSet.String("format", string(render.FormatText), "Output format. Options: 'text', 'json' or 'yaml'.")
	orderFlag := flagSet.String("order", string(render.OrderBoth), "Orders to print. Options: 'create', 'drop' or 'both'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	source := strings.ToLower(*sourceFlag)

	path := ""
	if *schemaFlag != "" {
		path = *schemaFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	} else if source != hclschema.Kind {
		path = os.Getenv(dsnEnv)
	}

	if path == "" {
		slog.Debug("No schema provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format, err := render.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	order, err := render.ParseOrder(*orderFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SchemaPath: path,
		Source:     source,
		Format:     format,
		Order:      order,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "source", config.Source)
	return config, false, nil
}
