package fmvalidate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Locator expands path patterns into the documents of a run.
type Locator interface {
	Locate(patterns []string) ([]string, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(patterns []string) ([]string, error)

func (f LocatorFunc) Locate(patterns []string) ([]string, error) { return f(patterns) }

// GlobLocator matches files with doublestar patterns ("**" crosses
// directories, "{a,b}" alternates). Patterns starting with "!" exclude
// matches. Files inside dot-prefixed directories, and dotfiles, only match
// when the pattern names a dot segment itself.
type GlobLocator struct {
	// FS is searched when set. Otherwise patterns are matched against the OS
	// filesystem relative to the working directory.
	FS fs.FS
}

// Locate returns the matching files in first-seen order without duplicates.
func (l GlobLocator) Locate(patterns []string) ([]string, error) {
	var include, exclude []string
	for _, p := range patterns {
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, l.normalize(neg))
			continue
		}
		include = append(include, l.normalize(p))
	}
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !l.valid(p) {
			return nil, &ConfigurationError{Message: fmt.Sprintf("invalid path pattern %q", p), Err: doublestar.ErrBadPattern}
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range include {
		matches, err := l.glob(p)
		if err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("invalid path pattern %q", p), Err: err}
		}
		for _, m := range matches {
			if seen[m] || (hasDotSegment(m) && !hasDotSegment(p)) || l.excluded(m, exclude) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, &NoMatchError{Patterns: patterns}
	}
	return out, nil
}

func (l GlobLocator) normalize(p string) string {
	if l.FS == nil {
		return p
	}
	return strings.TrimPrefix(filepath.ToSlash(p), "./")
}

func (l GlobLocator) valid(p string) bool {
	if l.FS == nil {
		return doublestar.ValidatePathPattern(p)
	}
	return doublestar.ValidatePattern(p)
}

func (l GlobLocator) glob(p string) ([]string, error) {
	if l.FS == nil {
		return doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
	}
	return doublestar.Glob(l.FS, p, doublestar.WithFilesOnly())
}

func (l GlobLocator) excluded(m string, exclude []string) bool {
	for _, neg := range exclude {
		var ok bool
		if l.FS == nil {
			ok, _ = doublestar.PathMatch(filepath.Clean(neg), m)
		} else {
			ok, _ = doublestar.Match(neg, m)
		}
		if ok {
			return true
		}
	}
	return false
}

// hasDotSegment reports whether any path segment starts with a dot, ignoring
// "." and "..".
func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// dedupe keeps the first occurrence of each path.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
