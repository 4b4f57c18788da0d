package jsonschema

import (
	"slices"
	"strconv"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"
)

// graph indexes every subschema reachable from a compiled root.
type graph struct {
	nodes []*sjs.Schema
	byLoc map[string]*sjs.Schema
}

func newGraph(root *sjs.Schema) *graph {
	g := &graph{byLoc: make(map[string]*sjs.Schema)}
	seen := map[*sjs.Schema]bool{root: true}
	queue := []*sjs.Schema{root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		g.nodes = append(g.nodes, s)
		g.byLoc[s.Location] = s
		for _, e := range append(inPlace(s), nested(s)...) {
			if !seen[e.to] {
				seen[e.to] = true
				queue = append(queue, e.to)
			}
		}
	}
	slices.SortFunc(g.nodes, func(a, b *sjs.Schema) int { return strings.Compare(a.Location, b.Location) })
	return g
}

// edge links a schema to a subschema. key is the instance token the
// subschema applies to: "" for subschemas applied to the same value, a
// property name, or "*" for any member or item.
type edge struct {
	to  *sjs.Schema
	key string
}

// inPlace lists the subschemas applied to the same instance value.
func inPlace(s *sjs.Schema) []edge {
	var out []edge
	add := func(ss ...*sjs.Schema) {
		for _, t := range ss {
			if t != nil {
				out = append(out, edge{to: t})
			}
		}
	}
	add(s.Ref, s.RecursiveRef, s.Not, s.If, s.Then, s.Else)
	if s.DynamicRef != nil {
		add(s.DynamicRef.Ref)
	}
	add(s.AllOf...)
	add(s.AnyOf...)
	add(s.OneOf...)
	for _, k := range sortedKeys(s.DependentSchemas) {
		add(s.DependentSchemas[k])
	}
	for _, k := range sortedKeys(s.Dependencies) {
		if t, ok := s.Dependencies[k].(*sjs.Schema); ok {
			add(t)
		}
	}
	return out
}

// nested lists the subschemas applied to members or items of the instance.
func nested(s *sjs.Schema) []edge {
	var out []edge
	add := func(key string, ss ...*sjs.Schema) {
		for _, t := range ss {
			if t != nil {
				out = append(out, edge{to: t, key: key})
			}
		}
	}
	for _, k := range sortedKeys(s.Properties) {
		add(k, s.Properties[k])
	}
	pats := make([]sjs.Regexp, 0, len(s.PatternProperties))
	for re := range s.PatternProperties {
		pats = append(pats, re)
	}
	slices.SortFunc(pats, func(a, b sjs.Regexp) int { return strings.Compare(a.String(), b.String()) })
	for _, re := range pats {
		add("*", s.PatternProperties[re])
	}
	if t, ok := s.AdditionalProperties.(*sjs.Schema); ok {
		add("*", t)
	}
	switch items := s.Items.(type) {
	case *sjs.Schema:
		add("*", items)
	case []*sjs.Schema:
		add("*", items...)
	}
	if t, ok := s.AdditionalItems.(*sjs.Schema); ok {
		add("*", t)
	}
	add("*", s.PrefixItems...)
	add("*", s.Items2020, s.Contains, s.UnevaluatedItems, s.UnevaluatedProperties, s.PropertyNames, s.ContentSchema)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// inPlaceCycle returns a schema that reaches itself through subschemas
// applied to the same value. Validating against such a schema never
// terminates.
func (g *graph) inPlaceCycle() *sjs.Schema {
	const (
		unseen = iota
		active
		done
	)
	state := make(map[*sjs.Schema]int, len(g.nodes))
	var visit func(s *sjs.Schema) *sjs.Schema
	visit = func(s *sjs.Schema) *sjs.Schema {
		switch state[s] {
		case active:
			return s
		case done:
			return nil
		}
		state[s] = active
		for _, e := range inPlace(s) {
			if c := visit(e.to); c != nil {
				return c
			}
		}
		state[s] = done
		return nil
	}
	for _, s := range g.nodes {
		if c := visit(s); c != nil {
			return c
		}
	}
	return nil
}

// locate finds the location of an object holding key that target is applied
// to, starting from schema from applied to v at loc. It serves violations the
// validator reports without an instance location.
func locate(from *sjs.Schema, v any, loc []string, target *sjs.Schema, key string) ([]string, bool) {
	type visit struct {
		s   *sjs.Schema
		loc string
	}
	seen := make(map[visit]bool)
	var walk func(s *sjs.Schema, v any, loc []string) ([]string, bool)
	walk = func(s *sjs.Schema, v any, loc []string) ([]string, bool) {
		k := visit{s, instancePointer(loc)}
		if seen[k] {
			return nil, false
		}
		seen[k] = true
		if s == target {
			if obj, ok := v.(map[string]any); ok {
				if _, ok := obj[key]; ok {
					return loc, true
				}
			}
		}
		for _, e := range inPlace(s) {
			if found, ok := walk(e.to, v, loc); ok {
				return found, true
			}
		}
		for _, e := range nested(s) {
			for _, child := range members(v, e.key) {
				if found, ok := walk(e.to, child.v, append(slices.Clip(loc), child.tok)); ok {
					return found, true
				}
			}
		}
		return nil, false
	}
	return walk(from, v, loc)
}

type member struct {
	tok string
	v   any
}

// members returns the members of v named by key, or all of them for "*".
func members(v any, key string) []member {
	switch t := v.(type) {
	case map[string]any:
		if key != "*" {
			if mv, ok := t[key]; ok {
				return []member{{key, mv}}
			}
			return nil
		}
		out := make([]member, 0, len(t))
		for _, k := range sortedKeys(t) {
			out = append(out, member{k, t[k]})
		}
		return out
	case []any:
		if key != "*" {
			return nil
		}
		out := make([]member, len(t))
		for i, item := range t {
			out[i] = member{strconv.Itoa(i), item}
		}
		return out
	}
	return nil
}
