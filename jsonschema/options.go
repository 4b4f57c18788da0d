package jsonschema

import (
	"fmt"

	"github.com/reoring/fmvalidate/i18n"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithTranslator sets the Translator used to render violation messages.
func WithTranslator(tr i18n.Translator) Option {
	return func(c *Compiler) {
		if tr != nil {
			c.translator = tr
		}
	}
}

// WithFormat registers a custom string format. A nil fn removes an earlier
// registration. A built-in name is replaced, except "regex".
func WithFormat(name string, fn FormatFunc) Option {
	return func(c *Compiler) {
		if fn == nil {
			delete(c.formats, name)
			return
		}
		c.formats[name] = fn
	}
}

// Diag carries non-fatal warnings produced during compilation.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
