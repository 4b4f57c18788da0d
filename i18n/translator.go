package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// Translator renders the message for a violated schema keyword.
// params carries the keyword-specific parameters recorded on the error (for
// example "missingProperty" or "limit").
type Translator interface {
	Message(keyword string, params map[string]any) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// Default returns the English translator. Its wording follows the phrasing
// common to JSON Schema validators ("must be string", "must have required
// property 'x'").
func Default() Translator { return dictTranslator{lang: "en"} }

// ForLanguage returns the built-in translator for lang ("en" or "ja").
// Unknown languages fall back to English.
func ForLanguage(lang string) Translator {
	if strings.ToLower(lang) != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: strings.ToLower(lang)}
}

func (t dictTranslator) Message(keyword string, params map[string]any) string {
	p := func(k string) string { return Format(params[k]) }
	if t.lang == "ja" {
		switch keyword {
		case "type":
			return p("type") + " 型である必要があります"
		case "required":
			return "必須プロパティ '" + p("missingProperty") + "' がありません"
		case "additionalProperties":
			return "追加のプロパティは許可されていません"
		case "enum":
			return "許可された値のいずれかである必要があります"
		case "const":
			return "定数と等しい必要があります"
		case "maxLength":
			return p("limit") + " 文字以下である必要があります"
		case "minLength":
			return p("limit") + " 文字以上である必要があります"
		case "maximum", "minimum", "exclusiveMaximum", "exclusiveMinimum":
			return p("comparison") + " " + p("limit") + " である必要があります"
		case "multipleOf":
			return p("multipleOf") + " の倍数である必要があります"
		case "pattern":
			return "パターン \"" + p("pattern") + "\" に一致する必要があります"
		case "format":
			return "フォーマット \"" + p("format") + "\" に一致する必要があります"
		case "maxItems", "additionalItems", "items":
			return "要素数は " + p("limit") + " 以下である必要があります"
		case "minItems":
			return "要素数は " + p("limit") + " 以上である必要があります"
		case "uniqueItems":
			return "要素が重複しています (" + p("j") + " 番目と " + p("i") + " 番目)"
		case "maxProperties":
			return "プロパティ数は " + p("limit") + " 以下である必要があります"
		case "minProperties":
			return "プロパティ数は " + p("limit") + " 以上である必要があります"
		case "contains":
			return "条件を満たす要素が不足しています"
		case "dependentRequired", "dependencies":
			return "プロパティ " + p("property") + " がある場合は " + p("deps") + " が必要です"
		case "propertyNames":
			return "プロパティ名が不正です"
		case "not":
			return "スキーマに一致してはいけません"
		case "anyOf":
			return "anyOf のいずれかのスキーマに一致する必要があります"
		case "oneOf":
			return "oneOf のスキーマのうち一つだけに一致する必要があります"
		case "$ref":
			return "$ref が循環しています"
		case "false schema":
			return "boolean スキーマが false です"
		}
		return keyword
	}
	switch keyword {
	case "type":
		return "must be " + p("type")
	case "required":
		return "must have required property '" + p("missingProperty") + "'"
	case "additionalProperties":
		return "must NOT have additional properties"
	case "enum":
		return "must be equal to one of the allowed values"
	case "const":
		return "must be equal to constant"
	case "maxLength":
		return "must NOT have more than " + p("limit") + " characters"
	case "minLength":
		return "must NOT have fewer than " + p("limit") + " characters"
	case "maximum", "minimum", "exclusiveMaximum", "exclusiveMinimum":
		return "must be " + p("comparison") + " " + p("limit")
	case "multipleOf":
		return "must be multiple of " + p("multipleOf")
	case "pattern":
		return "must match pattern \"" + p("pattern") + "\""
	case "format":
		return "must match format \"" + p("format") + "\""
	case "maxItems", "additionalItems", "items":
		return "must NOT have more than " + p("limit") + " items"
	case "minItems":
		return "must NOT have fewer than " + p("limit") + " items"
	case "uniqueItems":
		return "must NOT have duplicate items (items ## " + p("j") + " and " + p("i") + " are identical)"
	case "maxProperties":
		return "must NOT have more than " + p("limit") + " properties"
	case "minProperties":
		return "must NOT have fewer than " + p("limit") + " properties"
	case "contains":
		if _, ok := params["maxContains"]; ok {
			return "must contain at least " + p("minContains") + " and no more than " + p("maxContains") + " valid item(s)"
		}
		return "must contain at least " + p("minContains") + " valid item(s)"
	case "dependentRequired", "dependencies":
		noun := "property"
		if n, _ := params["depsCount"].(int); n != 1 {
			noun = "properties"
		}
		return "must have " + noun + " " + p("deps") + " when property " + p("property") + " is present"
	case "propertyNames":
		return "property name must be valid"
	case "not":
		return "must NOT be valid"
	case "anyOf":
		return "must match a schema in anyOf"
	case "oneOf":
		return "must match exactly one schema in oneOf"
	case "$ref":
		return "must NOT recurse through a $ref cycle"
	case "false schema":
		return "boolean schema is false"
	}
	return keyword
}

// Format renders a parameter value for embedding into a message. Numbers
// drop insignificant zeros so that 3 renders as "3" and 2.5 as "2.5".
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprint(t)
	}
}
