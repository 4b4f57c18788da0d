package jsonschema

import (
	sjs "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/reoring/fmvalidate/i18n"
)

// Schema is a compiled JSON Schema. It is immutable after Compile and safe
// for concurrent Validate calls.
type Schema struct {
	sch *sjs.Schema
	// doc is the decoded schema document, consulted for keyword values the
	// compiled form does not keep in their written order.
	doc   any
	nodes map[string]*sjs.Schema
	tr    i18n.Translator
}
