package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_English(t *testing.T) {
	tr := Default()
	cases := []struct {
		keyword string
		params  map[string]any
		want    string
	}{
		{"type", map[string]any{"type": "string"}, "must be string"},
		{"required", map[string]any{"missingProperty": "title"}, "must have required property 'title'"},
		{"additionalProperties", map[string]any{"additionalProperty": "x"}, "must NOT have additional properties"},
		{"minLength", map[string]any{"limit": 3}, "must NOT have fewer than 3 characters"},
		{"maximum", map[string]any{"comparison": "<=", "limit": 2.5}, "must be <= 2.5"},
		{"pattern", map[string]any{"pattern": "^a"}, `must match pattern "^a"`},
		{"uniqueItems", map[string]any{"i": 0, "j": 1}, "must NOT have duplicate items (items ## 1 and 0 are identical)"},
		{"dependentRequired", map[string]any{"property": "a", "deps": "b", "depsCount": 1}, "must have property b when property a is present"},
		{"dependentRequired", map[string]any{"property": "a", "deps": "b, c", "depsCount": 2}, "must have properties b, c when property a is present"},
		{"contains", map[string]any{"minContains": 1}, "must contain at least 1 valid item(s)"},
		{"$ref", nil, "must NOT recurse through a $ref cycle"},
		{"no-such-keyword", nil, "no-such-keyword"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tr.Message(tc.keyword, tc.params), tc.keyword)
	}
}

func TestTranslator_Japanese(t *testing.T) {
	ja := ForLanguage("ja")
	msg := ja.Message("required", map[string]any{"missingProperty": "title"})
	assert.NotEqual(t, Default().Message("required", map[string]any{"missingProperty": "title"}), msg)
	assert.Contains(t, msg, "title")

	// unknown languages fall back to English
	assert.Equal(t, "must be string", ForLanguage("fr").Message("type", map[string]any{"type": "string"}))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3", Format(float64(3)))
	assert.Equal(t, "0.5", Format(0.5))
	assert.Equal(t, "a, b", Format([]string{"a", "b"}))
	assert.Equal(t, "", Format(nil))
}
