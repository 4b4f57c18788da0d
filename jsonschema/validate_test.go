package jsonschema_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fmvalidate/i18n"
	"github.com/reoring/fmvalidate/jsonschema"
)

func mustCompile(t *testing.T, src string, opts ...jsonschema.Option) *jsonschema.Schema {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	s, _, err := jsonschema.NewCompiler(opts...).Compile(doc)
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

type brief struct {
	Keyword      string
	InstancePath string
	Message      string
}

func briefs(es jsonschema.Errors) []brief {
	out := make([]brief, 0, len(es))
	for _, e := range es {
		out = append(out, brief{e.Keyword, e.InstancePath, e.Message})
	}
	return out
}

const frontmatterSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"wrong": {"type": "string"}
	},
	"required": ["title"],
	"additionalProperties": false
}`

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := mustCompile(t, frontmatterSchema)

	ok, errs := s.Validate(decode(t, `{"description":"Hello","wrong":["data type"]}`))
	assert.False(t, ok)
	assert.Equal(t, []brief{
		{"required", "", "must have required property 'title'"},
		{"type", "/wrong", "must be string"},
	}, briefs(errs))
	assert.Equal(t, "title", errs[0].Params["missingProperty"])
	assert.Equal(t, "#/required", errs[0].SchemaPath)
	assert.Equal(t, "#/properties/wrong/type", errs[1].SchemaPath)

	ok, errs = s.Validate(decode(t, `{"title":"Second","additional":"Error","another":"Error"}`))
	assert.False(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "additionalProperties", errs[0].Keyword)
	assert.Equal(t, "must NOT have additional properties", errs[0].Message)
	assert.Equal(t, "additional", errs[0].Params["additionalProperty"])
	assert.Equal(t, "another", errs[1].Params["additionalProperty"])
}

func TestValidate_ValidDocument(t *testing.T) {
	s := mustCompile(t, frontmatterSchema)
	ok, errs := s.Validate(map[string]any{"title": "Hello"})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_Deterministic(t *testing.T) {
	s := mustCompile(t, `{"additionalProperties": false, "properties": {"a": {}}}`)
	doc := decode(t, `{"z":1,"y":2,"x":3,"a":4}`)
	_, first := s.Validate(doc)
	for i := 0; i < 20; i++ {
		_, again := s.Validate(doc)
		require.Equal(t, first, again)
	}
	assert.Equal(t, "x", first[0].Params["additionalProperty"])
	assert.Equal(t, "z", first[2].Params["additionalProperty"])
}

func TestValidate_Keywords(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		data   string
		want   []brief
	}{
		{"type list", `{"type":["string","number"]}`, `true`,
			[]brief{{"type", "", "must be string,number"}}},
		{"integer", `{"type":"integer"}`, `1.5`,
			[]brief{{"type", "", "must be integer"}}},
		{"integer accepts whole floats", `{"type":"integer"}`, `2.0`, nil},
		{"enum", `{"enum":["a","b"]}`, `"c"`,
			[]brief{{"enum", "", "must be equal to one of the allowed values"}}},
		{"const", `{"const":{"a":[1,2]}}`, `{"a":[1,2]}`, nil},
		{"const mismatch", `{"const":1}`, `2`,
			[]brief{{"const", "", "must be equal to constant"}}},
		{"minimum", `{"minimum":5}`, `4`,
			[]brief{{"minimum", "", "must be >= 5"}}},
		{"exclusiveMaximum", `{"exclusiveMaximum":5}`, `5`,
			[]brief{{"exclusiveMaximum", "", "must be < 5"}}},
		{"multipleOf", `{"multipleOf":2}`, `3`,
			[]brief{{"multipleOf", "", "must be multiple of 2"}}},
		{"minLength counts code points", `{"minLength":3}`, `"日本"`,
			[]brief{{"minLength", "", "must NOT have fewer than 3 characters"}}},
		{"maxLength", `{"maxLength":2}`, `"abc"`,
			[]brief{{"maxLength", "", "must NOT have more than 2 characters"}}},
		{"pattern", `{"pattern":"^a"}`, `"b"`,
			[]brief{{"pattern", "", `must match pattern "^a"`}}},
		{"format date", `{"format":"date"}`, `"2024-02-30"`,
			[]brief{{"format", "", `must match format "date"`}}},
		{"format ignores non strings", `{"format":"date"}`, `12`, nil},
		{"minItems", `{"minItems":2}`, `[1]`,
			[]brief{{"minItems", "", "must NOT have fewer than 2 items"}}},
		{"uniqueItems", `{"uniqueItems":true}`, `[1,2,1]`,
			[]brief{{"uniqueItems", "", "must NOT have duplicate items (items ## 2 and 0 are identical)"}}},
		{"items", `{"items":{"type":"string"}}`, `["a",1]`,
			[]brief{{"type", "/1", "must be string"}}},
		{"tuple additionalItems", `{"items":[{"type":"string"}],"additionalItems":false}`, `["a","b"]`,
			[]brief{{"additionalItems", "", "must NOT have more than 1 items"}}},
		{"prefixItems", `{"$schema":"https://json-schema.org/draft/2020-12/schema","prefixItems":[{"type":"string"}],"items":{"type":"number"}}`, `["a","b"]`,
			[]brief{{"type", "/1", "must be number"}}},
		{"contains", `{"contains":{"type":"string"}}`, `[1,2]`,
			[]brief{{"contains", "", "must contain at least 1 valid item(s)"}}},
		{"maxProperties", `{"maxProperties":1}`, `{"a":1,"b":2}`,
			[]brief{{"maxProperties", "", "must NOT have more than 1 properties"}}},
		{"additionalProperties schema", `{"properties":{"a":{}},"additionalProperties":{"type":"string"}}`, `{"a":1,"b":2}`,
			[]brief{{"type", "/b", "must be string"}}},
		{"patternProperties", `{"patternProperties":{"^x-":{"type":"string"}},"additionalProperties":false}`, `{"x-a":1,"y":2}`,
			[]brief{
				{"additionalProperties", "", "must NOT have additional properties"},
				{"type", "/x-a", "must be string"},
			}},
		{"propertyNames", `{"propertyNames":{"pattern":"^[a-z]+$"}}`, `{"A":1}`,
			[]brief{{"propertyNames", "", "property name must be valid"}}},
		{"dependencies", `{"dependencies":{"a":["b","c"]}}`, `{"a":1,"c":2}`,
			[]brief{{"dependencies", "", "must have properties b, c when property a is present"}}},
		{"dependentRequired", `{"$schema":"https://json-schema.org/draft/2019-09/schema","dependentRequired":{"a":["b"]}}`, `{"a":1}`,
			[]brief{{"dependentRequired", "", "must have property b when property a is present"}}},
		{"nested propertyNames", `{"properties":{"meta":{"properties":{"tags":{"propertyNames":{"pattern":"^[a-z]+$"}}}}}}`, `{"meta":{"tags":{"A":1}}}`,
			[]brief{{"propertyNames", "/meta/tags", "property name must be valid"}}},
		{"dependencies schema form", `{"dependencies":{"a":{"required":["c"]}}}`, `{"a":1}`,
			[]brief{{"required", "", "must have required property 'c'"}}},
		{"not", `{"not":{"type":"string"}}`, `"x"`,
			[]brief{{"not", "", "must NOT be valid"}}},
		{"anyOf", `{"anyOf":[{"type":"string"},{"type":"number"}]}`, `true`,
			[]brief{
				{"anyOf", "", "must match a schema in anyOf"},
				{"type", "", "must be string"},
				{"type", "", "must be number"},
			}},
		{"oneOf too many", `{"oneOf":[{"type":"number"},{"minimum":0}]}`, `1`,
			[]brief{{"oneOf", "", "must match exactly one schema in oneOf"}}},
		{"allOf", `{"allOf":[{"minimum":3},{"maximum":1}]}`, `2`,
			[]brief{
				{"minimum", "", "must be >= 3"},
				{"maximum", "", "must be <= 1"},
			}},
		{"if then", `{"if":{"properties":{"kind":{"const":"post"}}},"then":{"required":["date"]}}`, `{"kind":"post"}`,
			[]brief{{"required", "", "must have required property 'date'"}}},
		{"false schema", `{"properties":{"a":false}}`, `{"a":1}`,
			[]brief{{"false schema", "/a", "boolean schema is false"}}},
		{"ref to definitions", `{"definitions":{"s":{"type":"string"}},"properties":{"a":{"$ref":"#/definitions/s"}}}`, `{"a":1}`,
			[]brief{{"type", "/a", "must be string"}}},
		{"recursive ref", `{"$defs":{"tree":{"type":"object","properties":{"kids":{"type":"array","items":{"$ref":"#/$defs/tree"}}},"additionalProperties":false}},"$ref":"#/$defs/tree"}`,
			`{"kids":[{"kids":[{"bad":1}]}]}`,
			[]brief{{"additionalProperties", "/kids/0/kids/0", "must NOT have additional properties"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustCompile(t, tc.schema)
			ok, errs := s.Validate(decode(t, tc.data))
			if tc.want == nil {
				assert.True(t, ok, "unexpected errors: %v", errs)
				assert.Empty(t, errs)
				return
			}
			assert.False(t, ok)
			assert.Equal(t, tc.want, briefs(errs))
		})
	}
}

func TestValidate_SplitsMultiNameViolations(t *testing.T) {
	s := mustCompile(t, `{"required":["b","a"],"properties":{"meta":{"additionalProperties":false}}}`)
	_, errs := s.Validate(decode(t, `{"meta":{"y":1,"x":2}}`))
	require.Len(t, errs, 4)
	assert.Equal(t, "b", errs[0].Params["missingProperty"])
	assert.Equal(t, "a", errs[1].Params["missingProperty"])
	assert.Equal(t, "/meta", errs[2].InstancePath)
	assert.Equal(t, "x", errs[2].Params["additionalProperty"])
	assert.Equal(t, "y", errs[3].Params["additionalProperty"])
	assert.Equal(t, "#/properties/meta/additionalProperties", errs[3].SchemaPath)
}

func TestValidate_DraftFourExclusiveFlag(t *testing.T) {
	s := mustCompile(t, `{"$schema":"http://json-schema.org/draft-04/schema#","maximum":5,"exclusiveMaximum":true}`)
	ok, errs := s.Validate(5.0)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "must be < 5", errs[0].Message)
}

func TestValidate_AcceptsYAMLNumberTypes(t *testing.T) {
	s := mustCompile(t, `{"properties":{"n":{"type":"integer","maximum":10}}}`)
	ok, errs := s.Validate(map[string]any{"n": 3})
	assert.True(t, ok, "%v", errs)
	ok, _ = s.Validate(map[string]any{"n": uint64(11)})
	assert.False(t, ok)
}

func TestValidate_CustomFormatAndTranslator(t *testing.T) {
	s := mustCompile(t, `{"type":"string","format":"slug"}`,
		jsonschema.WithFormat("slug", func(s string) bool { return s != "" && s[0] != '-' }),
		jsonschema.WithTranslator(i18n.ForLanguage("ja")),
	)
	ok, errs := s.Validate("-bad")
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "format", errs[0].Keyword)
	assert.NotEqual(t, `must match format "slug"`, errs[0].Message)
}

func TestErrors_Error(t *testing.T) {
	es := jsonschema.Errors{
		{Keyword: "required"},
		{Keyword: "type", InstancePath: "/a"},
		{Keyword: "type", InstancePath: "/b"},
		{Keyword: "type", InstancePath: "/c"},
	}
	assert.Equal(t, "required at /; type at /a; type at /b; ... (total 4)", es.Error())
	assert.Equal(t, "", jsonschema.Errors(nil).Error())
}
