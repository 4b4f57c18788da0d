package jsonschema

import (
	"cmp"
	"errors"
	"math/big"
	"slices"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Validate checks v against the schema and returns every violation found.
// Violations are ordered by instance location, then by schema location, so
// repeated runs over the same value produce identical output.
func (s *Schema) Validate(v any) (bool, Errors) {
	err := s.sch.Validate(v)
	if err == nil {
		return true, nil
	}
	var ve *sjs.ValidationError
	if !errors.As(err, &ve) {
		return false, Errors{{Keyword: "schema", Message: err.Error(), Params: map[string]any{}}}
	}
	c := &collector{s: s, v: v}
	c.walk(ve, ve)
	slices.SortStableFunc(c.out, func(a, b Error) int {
		return cmp.Or(strings.Compare(a.InstancePath, b.InstancePath), strings.Compare(a.SchemaPath, b.SchemaPath))
	})
	return false, c.out
}

type collector struct {
	s   *Schema
	v   any
	out Errors
}

// walk flattens the validator's error tree. Wrappers contribute their causes;
// anyOf and failed-to-match oneOf also contribute themselves.
func (c *collector) walk(e, enclosing *sjs.ValidationError) {
	switch k := e.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.AllOf, *kind.Reference:
		for _, cause := range e.Causes {
			c.walk(cause, e)
		}
	case *kind.AnyOf:
		for _, cause := range e.Causes {
			c.walk(cause, e)
		}
		c.add(e.InstanceLocation, e.SchemaURL, "anyOf", "anyOf", map[string]any{})
	case *kind.OneOf:
		params := map[string]any{}
		if k.Subschemas == nil {
			for _, cause := range e.Causes {
				c.walk(cause, e)
			}
		} else {
			params["passingSchemas"] = k.Subschemas
		}
		c.add(e.InstanceLocation, e.SchemaURL, "oneOf", "oneOf", params)
	default:
		c.emit(e, enclosing)
	}
}

func (c *collector) emit(e *sjs.ValidationError, enclosing *sjs.ValidationError) {
	loc, at := e.InstanceLocation, e.SchemaURL
	node := c.s.nodes[at]
	if node == nil {
		node = &sjs.Schema{}
	}
	switch k := e.ErrorKind.(type) {
	case *kind.Type:
		c.add(loc, at, "type", "type", map[string]any{"type": c.typeParam(at, k.Want)})
	case *kind.Enum:
		c.add(loc, at, "enum", "enum", map[string]any{"allowedValues": k.Want})
	case *kind.Const:
		c.add(loc, at, "const", "const", map[string]any{"allowedValue": k.Want})
	case *kind.Format:
		c.add(loc, at, "format", "format", map[string]any{"format": k.Want})
	case *kind.Pattern:
		c.add(loc, at, "pattern", "pattern", map[string]any{"pattern": k.Want})
	case *kind.MinLength:
		c.add(loc, at, "minLength", "minLength", limit(k.Want))
	case *kind.MaxLength:
		c.add(loc, at, "maxLength", "maxLength", limit(k.Want))
	case *kind.MinItems:
		c.add(loc, at, "minItems", "minItems", limit(k.Want))
	case *kind.MaxItems:
		c.add(loc, at, "maxItems", "maxItems", limit(k.Want))
	case *kind.MinProperties:
		c.add(loc, at, "minProperties", "minProperties", limit(k.Want))
	case *kind.MaxProperties:
		c.add(loc, at, "maxProperties", "maxProperties", limit(k.Want))
	case *kind.AdditionalItems:
		tuple, _ := node.Items.([]*sjs.Schema)
		c.add(loc, at, "additionalItems", "additionalItems", limit(len(tuple)))
	case *kind.Minimum:
		c.add(loc, at, "minimum", "minimum", compare(">=", k.Want))
	case *kind.Maximum:
		c.add(loc, at, "maximum", "maximum", compare("<=", k.Want))
	case *kind.ExclusiveMinimum:
		c.add(loc, at, "exclusiveMinimum", "exclusiveMinimum", compare(">", k.Want))
	case *kind.ExclusiveMaximum:
		c.add(loc, at, "exclusiveMaximum", "exclusiveMaximum", compare("<", k.Want))
	case *kind.MultipleOf:
		c.add(loc, at, "multipleOf", "multipleOf", map[string]any{"multipleOf": ratFloat(k.Want)})
	case *kind.UniqueItems:
		c.add(loc, at, "uniqueItems", "uniqueItems", map[string]any{"i": k.Duplicates[0], "j": k.Duplicates[1]})
	case *kind.Contains:
		c.add(loc, at, "contains", "contains", containsParams(node, 1))
	case *kind.MinContains:
		c.add(loc, at, "contains", "minContains", containsParams(node, k.Want))
	case *kind.MaxContains:
		c.add(loc, at, "contains", "maxContains", containsParams(node, 1))
	case *kind.Required:
		for _, name := range k.Missing {
			c.add(loc, at, "required", "required", map[string]any{"missingProperty": name})
		}
	case *kind.Dependency:
		deps, _ := node.Dependencies[k.Prop].([]string)
		c.dependency(loc, at, "dependencies", k.Prop, k.Missing, deps)
	case *kind.DependentRequired:
		c.dependency(loc, at, "dependentRequired", k.Prop, k.Missing, node.DependentRequired[k.Prop])
	case *kind.AdditionalProperties:
		names := slices.Sorted(slices.Values(k.Properties))
		for _, name := range names {
			c.add(loc, at, "additionalProperties", "additionalProperties", map[string]any{"additionalProperty": name})
		}
	case *kind.PropertyNames:
		c.add(c.propertyNamesAt(enclosing, at, k.Property), at, "propertyNames", "", map[string]any{"propertyName": k.Property})
	case *kind.Not:
		c.add(loc, at, "not", "not", map[string]any{})
	case *kind.FalseSchema:
		c.add(loc, at, "false schema", "", map[string]any{})
	case *kind.RefCycle:
		c.add(loc, at, "$ref", "$ref", map[string]any{"ref": k.URL})
	default:
		path := e.ErrorKind.KeywordPath()
		keyword := "schema"
		if len(path) > 0 {
			keyword = path[len(path)-1]
		}
		c.add(loc, at, keyword, strings.Join(path, "/"), map[string]any{})
	}
}

// add records one violation. rel is the keyword path below the schema at.
func (c *collector) add(loc []string, at, keyword, rel string, params map[string]any) {
	sp := schemaPointer(at)
	if rel != "" {
		sp += "/" + rel
	}
	c.out = append(c.out, Error{
		Keyword:      keyword,
		InstancePath: instancePointer(loc),
		SchemaPath:   sp,
		Message:      c.s.tr.Message(keyword, params),
		Params:       params,
	})
}

// dependency records one violation per missing dependent property.
func (c *collector) dependency(loc []string, at, keyword, prop string, missing, deps []string) {
	if len(deps) == 0 {
		deps = missing
	}
	for _, name := range missing {
		c.add(loc, at, keyword, keyword+"/"+escapeToken(prop), map[string]any{
			"property":        prop,
			"missingProperty": name,
			"deps":            strings.Join(deps, ", "),
			"depsCount":       len(deps),
		})
	}
}

// typeParam renders the expected types in the order the schema lists them.
func (c *collector) typeParam(at string, want []string) string {
	if obj, ok := lookup(c.s.doc, fragmentOf(at)).(map[string]any); ok {
		switch t := obj["type"].(type) {
		case string:
			return t
		case []any:
			names := make([]string, 0, len(t))
			for _, n := range t {
				if s, ok := n.(string); ok {
					names = append(names, s)
				}
			}
			return strings.Join(names, ",")
		}
	}
	return strings.Join(want, ",")
}

// propertyNamesAt finds the object whose member name failed propertyNames.
// The validator reports these relative to the name, so the object is
// searched for from the nearest enclosing violation.
func (c *collector) propertyNamesAt(enclosing *sjs.ValidationError, at, name string) []string {
	from := c.s.nodes[enclosing.SchemaURL]
	target := c.s.nodes[strings.TrimSuffix(at, "/propertyNames")]
	start := enclosing.InstanceLocation
	if from == nil || target == nil {
		return start
	}
	if loc, ok := locate(from, valueAt(c.v, start), start, target, name); ok {
		return loc
	}
	return start
}

func limit(n int) map[string]any { return map[string]any{"limit": n} }

func compare(op string, r *big.Rat) map[string]any {
	return map[string]any{"comparison": op, "limit": ratFloat(r)}
}

func containsParams(node *sjs.Schema, minContains int) map[string]any {
	if node.MinContains != nil {
		minContains = *node.MinContains
	}
	params := map[string]any{"minContains": minContains}
	if node.MaxContains != nil {
		params["maxContains"] = *node.MaxContains
	}
	return params
}

func ratFloat(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}
