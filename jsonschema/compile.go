// Package jsonschema compiles JSON Schema documents with
// github.com/santhosh-tekuri/jsonschema/v6 and flattens its error trees into
// ordered violations carrying translated messages.
package jsonschema

import (
	"errors"
	"fmt"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/reoring/fmvalidate/i18n"
)

// schemaURL names the in-memory resource a document is compiled under.
const schemaURL = "mem:///schema.json"

// Compiler turns decoded JSON Schema documents into reusable validators.
// A Compiler carries no per-document state and can compile any number of
// schemas.
type Compiler struct {
	translator i18n.Translator
	formats    map[string]FormatFunc
}

// NewCompiler returns a Compiler with English messages and the built-in
// string formats.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{translator: i18n.Default(), formats: make(map[string]FormatFunc)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compile compiles doc, a schema decoded into the JSON data model
// (map[string]any, []any, string, float64, bool, nil). Documents without
// "$schema" are read as draft-07. Warnings about ignored keywords are
// reported through Diag.
func (c *Compiler) Compile(doc any) (*Schema, Diag, error) {
	d := &simpleDiag{}

	sc := sjs.NewCompiler()
	sc.DefaultDraft(sjs.Draft7)
	sc.AssertFormat()
	sc.UseLoader(localOnly{})
	for _, name := range sortedKeys(c.formats) {
		sc.RegisterFormat(&sjs.Format{Name: name, Validate: c.formats[name].assertion(name)})
	}
	if err := sc.AddResource(schemaURL, doc); err != nil {
		return nil, d, &CompileError{SchemaPath: "#", Message: "cannot load schema", Err: err}
	}
	sch, err := sc.Compile(schemaURL)
	if err != nil {
		return nil, d, compileError(err)
	}

	g := newGraph(sch)
	if s := g.inPlaceCycle(); s != nil {
		return nil, d, &CompileError{SchemaPath: schemaPointer(s.Location), Message: "$ref cycle never reaches a nested value"}
	}
	for _, s := range g.nodes {
		obj, ok := lookup(doc, fragmentOf(s.Location)).(map[string]any)
		if !ok || !strings.HasPrefix(s.Location, schemaURL+"#") {
			continue
		}
		at := schemaPointer(s.Location)
		if name, ok := obj["format"].(string); ok && !knownFormat(name, c.formats) {
			return nil, d, &CompileError{SchemaPath: at + "/format", Message: fmt.Sprintf("unknown format %q", name)}
		}
		for _, k := range sortedKeys(obj) {
			if !knownKeyword(k, s.DraftVersion) {
				d.warnf("unknown keyword %q ignored at %s/%s", k, at, escapeToken(k))
			}
		}
	}
	return &Schema{sch: sch, doc: doc, nodes: g.byLoc, tr: c.translator}, d, nil
}

// compileError maps a compiler failure to the schema location it concerns.
func compileError(err error) *CompileError {
	var (
		sve *sjs.SchemaValidationError
		rxe *sjs.InvalidRegexError
		pne *sjs.JSONPointerNotFoundError
		ane *sjs.AnchorNotFoundError
		lue *sjs.LoadURLError
	)
	switch {
	case errors.As(err, &sve):
		at := "#"
		if leaf := deepestCause(sve.Err); leaf != nil {
			at = "#" + instancePointer(leaf.InstanceLocation)
		}
		return &CompileError{SchemaPath: at, Message: "schema does not conform to its metaschema", Err: err}
	case errors.As(err, &rxe):
		return &CompileError{SchemaPath: schemaPointer(rxe.URL), Message: fmt.Sprintf("invalid regular expression %q", rxe.Regex), Err: err}
	case errors.As(err, &pne):
		return &CompileError{SchemaPath: schemaPointer(pne.URL), Message: "unresolvable $ref", Err: err}
	case errors.As(err, &ane):
		return &CompileError{SchemaPath: "#", Message: fmt.Sprintf("unresolvable $ref %s", ane.Reference), Err: err}
	case errors.As(err, &lue):
		return &CompileError{SchemaPath: "#", Message: "unresolvable $ref", Err: err}
	}
	return &CompileError{SchemaPath: "#", Message: "cannot compile schema", Err: err}
}

// deepestCause returns the first leaf with the longest instance location.
func deepestCause(err error) *sjs.ValidationError {
	var ve *sjs.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	best := ve
	var walk func(e *sjs.ValidationError)
	walk = func(e *sjs.ValidationError) {
		if len(e.Causes) == 0 {
			if len(e.InstanceLocation) > len(best.InstanceLocation) {
				best = e
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return best
}

// localOnly refuses every remote resource; schemas must be self-contained.
type localOnly struct{}

func (localOnly) Load(url string) (any, error) {
	return nil, fmt.Errorf("remote reference %s is not supported", url)
}

// keywords maps each keyword to the first and, when non-zero, the last draft
// that defines it. Annotations are included so they do not warn.
var keywords = map[string][2]int{
	"$schema": {4, 0}, "$ref": {4, 0}, "id": {4, 4}, "$id": {6, 0}, "definitions": {4, 0}, "$defs": {4, 0},
	"title": {4, 0}, "description": {4, 0}, "default": {4, 0}, "examples": {6, 0}, "$comment": {7, 0},
	"readOnly": {7, 0}, "writeOnly": {7, 0}, "deprecated": {2019, 0},
	"contentMediaType": {7, 0}, "contentEncoding": {7, 0}, "contentSchema": {2019, 0},
	"type": {4, 0}, "enum": {4, 0}, "const": {6, 0}, "format": {4, 0},
	"maximum": {4, 0}, "minimum": {4, 0}, "exclusiveMaximum": {4, 0}, "exclusiveMinimum": {4, 0}, "multipleOf": {4, 0},
	"maxLength": {4, 0}, "minLength": {4, 0}, "pattern": {4, 0},
	"items": {4, 0}, "additionalItems": {4, 2019}, "prefixItems": {2020, 0},
	"maxItems": {4, 0}, "minItems": {4, 0}, "uniqueItems": {4, 0},
	"contains": {6, 0}, "maxContains": {2019, 0}, "minContains": {2019, 0}, "unevaluatedItems": {2019, 0},
	"maxProperties": {4, 0}, "minProperties": {4, 0}, "required": {4, 0},
	"properties": {4, 0}, "patternProperties": {4, 0}, "additionalProperties": {4, 0},
	"propertyNames": {6, 0}, "unevaluatedProperties": {2019, 0},
	"dependencies": {4, 7}, "dependentRequired": {2019, 0}, "dependentSchemas": {2019, 0},
	"allOf": {4, 0}, "anyOf": {4, 0}, "oneOf": {4, 0}, "not": {4, 0},
	"if": {7, 0}, "then": {7, 0}, "else": {7, 0},
	"$anchor": {2019, 0}, "$vocabulary": {2019, 0},
	"$recursiveRef": {2019, 2019}, "$recursiveAnchor": {2019, 2019},
	"$dynamicRef": {2020, 0}, "$dynamicAnchor": {2020, 0},
}

func knownKeyword(k string, draft int) bool {
	r, ok := keywords[k]
	return ok && draft >= r[0] && (r[1] == 0 || draft <= r[1])
}
