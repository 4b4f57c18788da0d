package fmvalidate

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// LoadSchema resolves the run's schema document. SchemaPath wins over inline
// Schema text. The file is read from fsys, or from the OS when fsys is nil.
func LoadSchema(fsys fs.FS, cfg Config) (any, error) {
	var (
		text   []byte
		source string
	)
	switch {
	case cfg.SchemaPath != "":
		b, err := readFile(fsys, cfg.SchemaPath)
		if err != nil {
			return nil, err
		}
		text, source = b, cfg.SchemaPath
	case cfg.Schema != "":
		text, source = []byte(cfg.Schema), "SCHEMA"
	default:
		return nil, &ConfigurationError{Message: "Either schema or schema_path must be provided"}
	}

	var doc any
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return doc, nil
}

func readFile(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return os.ReadFile(name)
	}
	return fs.ReadFile(fsys, path.Clean(filepath.ToSlash(name)))
}
