package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/syssam/layergen/compiler/naming"
)

const (
	// DefaultTarget is the output root used when none is configured.
	DefaultTarget = "internal/domain"
	// DefaultHeader is the comment placed at the top of generated files.
	DefaultHeader = "Code generated by layergen."
)

// Config is the resolved configuration of one generation run. It is built
// once with NewConfig and never mutated afterward.
type Config struct {
	// Entity is the PascalCase name of the entity to generate.
	Entity string
	// SchemaLocator addresses the schema source: a directory, a file or a
	// database locator such as "sqlite://game.db". Empty selects the
	// default file source rooted at "models".
	SchemaLocator string
	// Target is the absolute output root.
	Target string
	// Package is the Go import path of Target. Generated artifacts import
	// each other through it.
	Package string
	// Artifacts selects the kinds to emit.
	Artifacts Artifacts
	// Overwrite allows replacing existing artifact files.
	Overwrite bool
	// APIPrefix and APITag override the derived route prefix and API tag.
	APIPrefix string
	APITag    string
	// Tests requests test generation. It is accepted but not implemented.
	Tests bool
	// TemplateDir holds optional <kind>.tmpl files that replace the
	// built-in renderers.
	TemplateDir string
	// Header is the comment placed at the top of generated files.
	Header string
}

// NewConfig resolves the configuration of a run for the given entity. The
// target is made absolute and created if missing, and the package path is
// derived from the enclosing Go module unless set with WithPackage.
func NewConfig(entity string, opts ...Option) (Config, error) {
	c := Config{
		Entity:    entity,
		Target:    DefaultTarget,
		Artifacts: AllArtifacts(),
		Header:    DefaultHeader,
	}
	if entity == "" {
		return Config{}, NewConfigError("Entity", nil, "entity name is required")
	}
	if !naming.ValidEntity(entity) {
		return Config{}, NewConfigError("Entity", entity, "entity name must be a PascalCase identifier")
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}
	abs, err := filepath.Abs(c.Target)
	if err != nil {
		return Config{}, fmt.Errorf("layergen: resolve target %q: %w", c.Target, err)
	}
	c.Target = abs
	if err := os.MkdirAll(c.Target, 0o755); err != nil {
		return Config{}, fmt.Errorf("layergen: create target: %w", err)
	}
	if c.Package == "" {
		if c.Package, err = PackagePath(c.Target); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// validate checks the parts of a configuration a run cannot do without.
// It guards against zero Config values built without NewConfig.
func (c Config) validate() error {
	switch {
	case c.Entity == "":
		return NewConfigError("Entity", nil, "entity name is required")
	case c.Target == "" || !filepath.IsAbs(c.Target):
		return NewConfigError("Target", c.Target, "target must be an absolute path; use NewConfig")
	case c.Package == "":
		return NewConfigError("Package", nil, "package path is required; use NewConfig")
	}
	return nil
}

// PackagePath returns the Go import path of dir: the path of the nearest
// enclosing module joined with the relative path of dir inside it. Without an
// enclosing module, the base name of dir is used.
func PackagePath(dir string) (string, error) {
	for root := dir; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		switch {
		case err == nil:
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", fmt.Errorf("layergen: no module directive in %s", filepath.Join(root, "go.mod"))
			}
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				return "", err
			}
			return path.Join(mod, filepath.ToSlash(rel)), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("layergen: read go.mod: %w", err)
		}
		parent := filepath.Dir(root)
		if parent == root {
			return filepath.Base(dir), nil
		}
		root = parent
	}
}
