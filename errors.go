package fmvalidate

import (
	"errors"
	"fmt"
	"strings"
)

// KeywordIO marks a ValidationError raised because a located document could
// not be read.
const KeywordIO = "io"

// ConfigurationError reports a run that cannot start: no schema source, no
// path patterns, a schema that does not compile or a malformed pattern.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ParseError reports schema or frontmatter text that is not valid structured
// data. Error returns the decoder's message unchanged.
type ParseError struct {
	// Source names the input: the schema file path, "SCHEMA" for inline
	// schema text, or the document path.
	Source string
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// NoMatchError reports path patterns that matched no documents.
type NoMatchError struct {
	Patterns []string
}

func (e *NoMatchError) Error() string {
	return "No files match the pattern " + strings.Join(e.Patterns, ", ")
}

// ValidationError is one schema violation found in one document. Values are
// built once per violation and never modified afterwards.
type ValidationError struct {
	// Path is the document the violation came from.
	Path string
	// Keyword is the failing schema keyword, or KeywordIO.
	Keyword string
	// InstancePath is a JSON Pointer into the frontmatter ("" for the root).
	InstancePath string
	// Message is the display message, including the "(property)" suffix.
	Message string
	Params  map[string]any
	// Cause is set for KeywordIO errors.
	Cause error
}

// Error renders "<path>: <message>", the form used for reporting.
func (e ValidationError) Error() string { return e.Path + ": " + e.Message }

func (e ValidationError) Unwrap() error { return e.Cause }

// ValidationErrors is the accumulated result of a run and implements error.
type ValidationErrors []ValidationError

// Error summarizes the first few violations.
func (ves ValidationErrors) Error() string {
	if len(ves) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(ves), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ves[i].Error())
	}
	if len(ves) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(ves))
	}
	return b.String()
}

// AsValidationErrors extracts ValidationErrors from an error using errors.As.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return ves, true
	}
	return nil, false
}
