package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/united-manufacturing-hub/umh-utils/env"

	"github.com/reoring/fmvalidate"
	"github.com/reoring/fmvalidate/actions"
	"github.com/reoring/fmvalidate/i18n"
	"github.com/reoring/fmvalidate/internal/logger"
	"github.com/reoring/fmvalidate/jsonschema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer, fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(w, "fmvalidate\n\nUsage:\n  fmvalidate [-schema-path file | -schema json] -paths 'glob[,glob...]'\n\nInputs default to the INPUT_SCHEMA_PATH, INPUT_SCHEMA and INPUT_PATHS\nenvironment variables set by the Actions runner.\n\nFlags:")
		fs.PrintDefaults()
	}
}

// run executes one validation and returns the process exit status: 0 when
// every document is valid, 1 on violations or fatal errors, 2 on bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmvalidate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(stderr, fs)
	var schema, schemaPath, pathsCSV, lang, logLevel string
	fs.StringVar(&schema, "schema", "", "inline JSON schema (overrides INPUT_SCHEMA)")
	fs.StringVar(&schemaPath, "schema-path", "", "schema file, wins over -schema (overrides INPUT_SCHEMA_PATH)")
	fs.StringVar(&pathsCSV, "paths", "", "comma-separated glob patterns (overrides INPUT_PATHS)")
	fs.StringVar(&lang, "lang", "en", "message language (en, ja)")
	fs.StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOGGING_LEVEL)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return 2
	}

	if logLevel == "" {
		logLevel, _ = env.GetAsString("LOGGING_LEVEL", false, "PRODUCTION") //nolint:errcheck
	}
	logFormat, _ := env.GetAsString("LOGGING_FORMAT", false, string(logger.FormatConsole)) //nolint:errcheck
	log := logger.NewTo(stderr, logLevel, logger.LogFormat(logFormat)).Sugar()
	defer func() { _ = log.Sync() }()

	cfg, err := actions.LoadConfig()
	if err != nil {
		return fatal(stdout, err)
	}
	if schema != "" {
		cfg.Schema = schema
	}
	if schemaPath != "" {
		cfg.SchemaPath = schemaPath
	}
	if pathsCSV != "" {
		cfg.Paths = fmvalidate.SplitPatterns(pathsCSV)
	}

	reporter := actions.NewReporter(stdout)
	p := &fmvalidate.Pipeline{
		Compiler: jsonschema.NewCompiler(jsonschema.WithTranslator(i18n.ForLanguage(lang))),
		Reporter: reporter,
		Logger:   log,
	}
	if _, err := p.Run(ctx, cfg); err != nil {
		log.Debugw("run aborted", "error", err)
		return fatal(stdout, err)
	}
	return reporter.ExitCode()
}

// fatal reports an error that stopped the run. Document parse errors carry
// the offending file.
func fatal(w io.Writer, err error) int {
	var pe *fmvalidate.ParseError
	if errors.As(err, &pe) && pe.Source != "SCHEMA" {
		actions.Issue(w, "error", map[string]string{"file": pe.Source}, err.Error())
		return 1
	}
	actions.Error(w, err.Error())
	return 1
}
