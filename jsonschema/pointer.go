package jsonschema

import (
	"net/url"
	"strconv"
	"strings"
)

// instancePointer renders instance location tokens as a JSON Pointer; the
// root is the empty string.
func instancePointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(escapeToken(tok))
	}
	return b.String()
}

// escapeToken escapes '~' as "~0" and '/' as "~1" (RFC 6901).
func escapeToken(tok string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1")
}

// fragmentOf returns "#<fragment>" for locations inside the compiled
// document. Other locations (metaschemas) are returned unchanged.
func fragmentOf(loc string) string {
	if frag, ok := strings.CutPrefix(loc, schemaURL); ok && strings.HasPrefix(frag, "#") {
		return frag
	}
	return loc
}

// parseFragment splits a "#/a/b" fragment into unescaped pointer tokens.
func parseFragment(frag string) ([]string, bool) {
	frag = strings.TrimPrefix(frag, "#")
	if frag == "" {
		return nil, true
	}
	if !strings.HasPrefix(frag, "/") {
		return nil, false
	}
	raw := strings.Split(frag[1:], "/")
	out := make([]string, len(raw))
	for i, tok := range raw {
		if u, err := url.PathUnescape(tok); err == nil {
			tok = u
		}
		out[i] = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
	}
	return out, true
}

// lookup resolves a "#/..." fragment against a decoded document. It returns
// nil when the fragment does not resolve.
func lookup(doc any, frag string) any {
	tokens, ok := parseFragment(frag)
	if !ok {
		return nil
	}
	return valueAt(doc, tokens)
}

func valueAt(v any, tokens []string) any {
	for _, tok := range tokens {
		switch t := v.(type) {
		case map[string]any:
			v = t[tok]
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(t) {
				return nil
			}
			v = t[i]
		default:
			return nil
		}
	}
	return v
}

// schemaPointer renders a compiled schema location, or a location inside the
// compiled document, as an unencoded "#/..." pointer.
func schemaPointer(loc string) string {
	frag := fragmentOf(loc)
	if !strings.HasPrefix(frag, "#") {
		return loc
	}
	tokens, ok := parseFragment(frag)
	if !ok {
		return frag
	}
	return "#" + instancePointer(tokens)
}
