package fmvalidate

import "strings"

// Config holds the inputs of a run.
type Config struct {
	// Schema is inline schema text. Ignored when SchemaPath is set.
	Schema string
	// SchemaPath names a file holding the schema.
	SchemaPath string
	// Paths lists glob patterns selecting the documents. A leading "!"
	// excludes matches.
	Paths []string
}

// SplitPatterns splits a comma-separated pattern list, trimming blanks and
// dropping empty entries.
func SplitPatterns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Annotation carries the location a reported message refers to.
type Annotation struct {
	File string
}

// Reporter receives the outcome of a run.
type Reporter interface {
	// ReportError is called once per violation.
	ReportError(message string, a Annotation)
	// MarkFailed is called at most once, after all violations were reported,
	// and only when there was at least one.
	MarkFailed()
}

// Entry is one message recorded by a Collector.
type Entry struct {
	Message    string
	Annotation Annotation
}

// Collector is an in-memory Reporter.
type Collector struct {
	Entries []Entry
	Failed  bool
}

func (c *Collector) ReportError(message string, a Annotation) {
	c.Entries = append(c.Entries, Entry{Message: message, Annotation: a})
}

func (c *Collector) MarkFailed() { c.Failed = true }

// Result is the outcome of a completed run.
type Result struct {
	// Documents lists every validated document in processing order.
	Documents []string
	Errors    ValidationErrors
}

// Failed reports whether any violation was collected.
func (r Result) Failed() bool { return len(r.Errors) > 0 }
