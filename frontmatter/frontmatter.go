// Package frontmatter splits a document into its leading metadata block and
// the remaining body.
//
// A block opens with a "---" line at the very start of the document and
// closes with the next line that is exactly "---":
//
//	---
//	title: Hello
//	tags: [a, b]
//	---
//	Body text
//
// Text following the opening marker selects the block language ("---json").
// YAML is the default.
package frontmatter

import (
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Matter is the result of splitting a document.
type Matter struct {
	// Data is the decoded block in the JSON data model. It is an empty
	// map[string]any when the document has no block or the block is empty.
	Data any
	// Content is the document body after the closing delimiter.
	Content string
	// Language is the text after the opening delimiter ("" for plain "---").
	Language string
	// Raw is the undecoded block text between the delimiters.
	Raw string
}

// EngineError reports a block language with no registered decoder.
type EngineError struct {
	Language string
}

func (e *EngineError) Error() string {
	return "frontmatter: engine \"" + e.Language + "\" is not registered"
}

// Parse splits b into metadata and body. A missing block is not an error.
// Decoder errors are returned unchanged.
func Parse(b []byte) (Matter, error) {
	s := strings.TrimPrefix(string(b), "\ufeff")
	m := Matter{Data: map[string]any{}, Content: s}
	if !strings.HasPrefix(s, delimiter) || strings.HasPrefix(s, delimiter+"-") {
		return m, nil
	}

	rest := s[len(delimiter):]
	opener := rest
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		opener, rest = rest[:nl], rest[nl+1:]
	} else {
		rest = ""
	}
	m.Language = strings.TrimSpace(opener)
	m.Raw, m.Content = splitClosing(rest)

	data, err := decode(m.Language, m.Raw)
	if err != nil {
		return Matter{}, err
	}
	m.Data = data
	return m, nil
}

// splitClosing returns the block text before the closing delimiter line and
// the body after it. An unclosed block consumes the whole input.
func splitClosing(s string) (string, string) {
	off := 0
	for off <= len(s) {
		end := strings.IndexByte(s[off:], '\n')
		line := s[off:]
		next := len(s) + 1
		if end >= 0 {
			line = s[off : off+end]
			next = off + end + 1
		}
		if strings.TrimRight(line, " \t\r") == delimiter {
			if next > len(s) {
				return s[:off], ""
			}
			return s[:off], s[next:]
		}
		off = next
	}
	return s, ""
}

func decode(lang, raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var v any
	switch strings.ToLower(lang) {
	case "", "yaml", "yml":
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
	default:
		return nil, &EngineError{Language: lang}
	}
	if v == nil {
		return map[string]any{}, nil
	}
	return normalize(v), nil
}
