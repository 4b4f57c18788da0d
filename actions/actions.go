// Package actions connects the validator to the GitHub Actions runner: inputs
// arrive as INPUT_* environment variables and results leave as workflow
// commands on stdout.
package actions

import (
	"fmt"
	"io"
	"strings"

	"github.com/united-manufacturing-hub/umh-utils/env"

	"github.com/reoring/fmvalidate"
)

// GetInput returns the trimmed value of the named action input. An input that
// is unset or blank counts as not supplied.
func GetInput(name string, required bool) (string, error) {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	v, err := env.GetAsString(key, false, "")
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if required && v == "" {
		return "", &fmvalidate.ConfigurationError{Message: "Input required and not supplied: " + strings.ToUpper(name)}
	}
	return v, nil
}

// LoadConfig reads the schema_path, schema and paths inputs. Presence rules
// are left to the pipeline so library and action runs fail the same way.
func LoadConfig() (fmvalidate.Config, error) {
	schemaPath, err := GetInput("schema_path", false)
	if err != nil {
		return fmvalidate.Config{}, err
	}
	schema, err := GetInput("schema", false)
	if err != nil {
		return fmvalidate.Config{}, err
	}
	paths, err := GetInput("paths", false)
	if err != nil {
		return fmvalidate.Config{}, err
	}
	return fmvalidate.Config{
		Schema:     schema,
		SchemaPath: schemaPath,
		Paths:      fmvalidate.SplitPatterns(paths),
	}, nil
}

// Reporter writes violations as ::error workflow commands.
type Reporter struct {
	Out    io.Writer
	failed bool
}

var _ fmvalidate.Reporter = (*Reporter)(nil)

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter { return &Reporter{Out: w} }

func (r *Reporter) ReportError(message string, a fmvalidate.Annotation) {
	props := map[string]string{}
	if a.File != "" {
		props["file"] = a.File
	}
	Issue(r.Out, "error", props, message)
}

func (r *Reporter) MarkFailed() { r.failed = true }

// ExitCode is 1 once MarkFailed was called, 0 before.
func (r *Reporter) ExitCode() int {
	if r.failed {
		return 1
	}
	return 0
}

// Error writes a bare ::error command, used for failures that abort a run.
func Error(w io.Writer, message string) {
	Issue(w, "error", nil, message)
}

// Issue writes one workflow command. Properties are emitted in a fixed order.
func Issue(w io.Writer, command string, props map[string]string, message string) {
	b := &strings.Builder{}
	b.WriteString("::")
	b.WriteString(command)
	first := true
	for _, k := range []string{"title", "file", "line", "col"} {
		v, ok := props[k]
		if !ok {
			continue
		}
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(escapeProperty(v))
	}
	b.WriteString("::")
	b.WriteString(escapeData(message))
	fmt.Fprintln(w, b.String())
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string { return dataEscaper.Replace(s) }

func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
