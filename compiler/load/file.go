package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/layergen/compiler/naming"
)

const (
	// DefaultDir is the directory the default file source is rooted at.
	DefaultDir = "models"
	// FlatName is the file stem of the flat models namespace.
	FlatName = "models"
)

// extensions are tried in order for every file convention. JSON documents
// are valid YAML and decode with the same parser.
var extensions = []string{".yaml", ".yml", ".json"}

// FileSource loads schemas from YAML or JSON files.
//
// Rooted at a directory, an entity is looked up with two conventions: a file
// named after the entity (lower-cased, or in snake_case), then the flat
// models namespace file ("models.yaml"). In single-file mode only the given
// file is read.
type FileSource struct {
	path   string
	single bool
}

// NewFileSource returns a file source rooted at the given directory.
func NewFileSource(dir string) *FileSource {
	return &FileSource{path: dir}
}

// Single returns a copy of the source that reads the path as one file.
func (s *FileSource) Single() *FileSource {
	return &FileSource{path: s.path, single: true}
}

// Path returns the directory or file the source reads.
func (s *FileSource) Path() string { return s.path }

// Candidates returns the files looked up for the entity, in order.
func (s *FileSource) Candidates(entity string) []string {
	if s.single {
		return []string{s.path}
	}
	stems := []string{strings.ToLower(entity)}
	if snake := naming.Snake(entity); snake != stems[0] {
		stems = append(stems, snake)
	}
	stems = append(stems, FlatName)
	files := make([]string, 0, len(stems)*len(extensions))
	for _, stem := range stems {
		for _, ext := range extensions {
			files = append(files, filepath.Join(s.path, stem+ext))
		}
	}
	return files
}

// Describe implements Source.
func (s *FileSource) Describe(ctx context.Context, entity string) (*Schema, error) {
	var tried []string
	for _, path := range s.Candidates(entity) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		schemas, err := ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tried = append(tried, path)
		for _, sc := range schemas {
			if sc.Name == entity {
				return sc, nil
			}
		}
	}
	if len(tried) == 0 {
		return nil, fmt.Errorf("%w: %q: no schema file found under %s", ErrNotFound, entity, s.path)
	}
	return nil, fmt.Errorf("%w: %q is not declared in %s", ErrNotFound, entity, strings.Join(tried, ", "))
}

// document is one YAML document: a single entity, or a list of entities
// under the "entities" key.
type document struct {
	Schema   `yaml:",inline"`
	Entities []*Schema `yaml:"entities,omitempty"`
}

// ReadFile reads all entity schemas declared in a YAML or JSON file.
// Multi-document YAML streams are supported.
func ReadFile(path string) ([]*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, path)
}

func decode(r io.Reader, path string) ([]*Schema, error) {
	var (
		schemas []*Schema
		dec     = yaml.NewDecoder(r)
	)
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load: decode %s: %w", path, err)
		}
		if doc.Name != "" {
			sc := doc.Schema
			schemas = append(schemas, &sc)
		}
		schemas = append(schemas, doc.Entities...)
	}
	for i, sc := range schemas {
		if sc == nil {
			return nil, fmt.Errorf("load: decode %s: empty entity at index %d", path, i)
		}
		sc.Pos = path
		if err := sc.validate(); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}
