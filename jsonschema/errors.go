package jsonschema

import (
	"fmt"
	"strings"
)

// Error is a single schema violation.
type Error struct {
	// Keyword is the schema keyword that failed, e.g. "required" or "type".
	Keyword string
	// InstancePath is a JSON Pointer into the validated value ("" for the root).
	InstancePath string
	// SchemaPath locates the failing keyword in the schema, e.g. "#/properties/a/type".
	SchemaPath string
	Message    string
	// Params carries keyword-specific details such as "missingProperty",
	// "additionalProperty" or "limit".
	Params map[string]any
}

func (e Error) Error() string {
	if e.InstancePath == "" {
		return e.Message
	}
	return e.InstancePath + " " + e.Message
}

// Errors is an ordered collection of violations that implements error.
type Errors []Error

// Error summarizes the first few violations.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(es), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", es[i].Keyword, displayPointer(es[i].InstancePath))
	}
	if len(es) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(es))
	}
	return b.String()
}

func displayPointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// CompileError reports a schema that cannot be compiled.
type CompileError struct {
	SchemaPath string
	Message    string
	Err        error
}

func (e *CompileError) Error() string {
	msg := "jsonschema: " + e.Message + " at " + e.SchemaPath
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }
