package fmvalidate

import (
	"context"
	"io/fs"
	"maps"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/fmvalidate/frontmatter"
	"github.com/reoring/fmvalidate/jsonschema"
)

// Pipeline validates the frontmatter of a document set. A Pipeline holds only
// collaborators, so one value can run any number of times.
type Pipeline struct {
	// Compiler compiles the schema. A default Compiler is used when nil.
	Compiler *jsonschema.Compiler
	// Locator expands path patterns. Defaults to GlobLocator{FS: FS}.
	Locator Locator
	// Reporter receives violations and the failure signal. Optional.
	Reporter Reporter
	// FS is read for the schema file and documents. Nil means the OS.
	FS fs.FS
	// Logger defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// Run loads and compiles the schema, locates the documents and validates each
// one in turn. Configuration, parse and location failures abort the run and
// are returned as errors. Schema violations never abort: they are collected
// into Result.Errors, reported, and turn the run into a failure.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (Result, error) {
	log := p.logger().With("run_id", uuid.NewString())

	doc, err := LoadSchema(p.FS, cfg)
	if err != nil {
		return Result{}, err
	}
	if cfg.SchemaPath != "" {
		log.Debugw("schema loaded", "schema_path", cfg.SchemaPath)
	} else {
		log.Debugw("schema loaded", "source", "inline")
	}

	schema, diag, err := p.compiler().Compile(doc)
	if err != nil {
		return Result{}, &ConfigurationError{Message: "invalid schema", Err: err}
	}
	for _, w := range diag.Warnings() {
		log.Warnw("schema warning", "warning", w)
	}

	if len(cfg.Paths) == 0 {
		return Result{}, &ConfigurationError{Message: "Input required and not supplied: PATHS"}
	}
	docs, err := p.locator().Locate(cfg.Paths)
	if err != nil {
		return Result{}, err
	}
	docs = dedupe(docs)
	log.Infow("documents located", "patterns", cfg.Paths, "documents", len(docs))

	var errs ValidationErrors
	for _, path := range docs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		docErrs, err := p.validateDocument(schema, path)
		if err != nil {
			return Result{}, err
		}
		log.Debugw("document validated", "path", path, "errors", len(docErrs))
		errs = append(errs, docErrs...)
	}

	res := Result{Documents: docs, Errors: errs}
	p.report(res)
	log.Infow("validation finished", "documents", len(docs), "errors", len(errs))
	return res, nil
}

func (p *Pipeline) validateDocument(schema *jsonschema.Schema, path string) (ValidationErrors, error) {
	raw, err := readFile(p.FS, path)
	if err != nil {
		return ValidationErrors{{
			Path:    path,
			Keyword: KeywordIO,
			Message: err.Error(),
			Params:  map[string]any{},
			Cause:   err,
		}}, nil
	}
	m, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}
	ok, verrs := schema.Validate(m.Data)
	if ok {
		return nil, nil
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, newValidationError(path, e))
	}
	return out, nil
}

// newValidationError builds the reported form of a violation. The offending
// location below the document root is appended in parentheses. For
// additionalProperties it ends with the unexpected key.
func newValidationError(path string, e jsonschema.Error) ValidationError {
	msg := e.Message
	if where := violationTarget(e); where != "" {
		msg += " (" + where + ")"
	}
	return ValidationError{
		Path:         path,
		Keyword:      e.Keyword,
		InstancePath: e.InstancePath,
		Message:      msg,
		Params:       maps.Clone(e.Params),
	}
}

func violationTarget(e jsonschema.Error) string {
	if e.Keyword == "additionalProperties" {
		if p, ok := e.Params["additionalProperty"].(string); ok {
			return strings.TrimPrefix(e.InstancePath+"/"+p, "/")
		}
	}
	return strings.TrimPrefix(e.InstancePath, "/")
}

func (p *Pipeline) report(res Result) {
	if p.Reporter == nil {
		return
	}
	for _, e := range res.Errors {
		p.Reporter.ReportError(e.Error(), Annotation{File: e.Path})
	}
	if res.Failed() {
		p.Reporter.MarkFailed()
	}
}

func (p *Pipeline) compiler() *jsonschema.Compiler {
	if p.Compiler != nil {
		return p.Compiler
	}
	return jsonschema.NewCompiler()
}

func (p *Pipeline) locator() Locator {
	if p.Locator != nil {
		return p.Locator
	}
	return GlobLocator{FS: p.FS}
}

func (p *Pipeline) logger() *zap.SugaredLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop().Sugar()
}
