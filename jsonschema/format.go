package jsonschema

import "fmt"

// FormatFunc reports whether s is a valid instance of a string format.
// Non-string values always pass format checks.
type FormatFunc func(s string) bool

// builtinFormats are the formats asserted by the underlying validator.
var builtinFormats = map[string]bool{
	"date": true, "time": true, "date-time": true, "duration": true, "period": true,
	"email": true, "hostname": true, "ipv4": true, "ipv6": true,
	"uri": true, "uri-reference": true, "iri": true, "iri-reference": true, "uri-template": true,
	"uuid": true, "json-pointer": true, "relative-json-pointer": true,
	"semver": true, "regex": true,
}

func knownFormat(name string, custom map[string]FormatFunc) bool {
	if builtinFormats[name] {
		return true
	}
	_, ok := custom[name]
	return ok
}

// assertion adapts fn to the validator's format hook.
func (fn FormatFunc) assertion(name string) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok || fn(s) {
			return nil
		}
		return fmt.Errorf("%q is not valid %s", s, name)
	}
}
