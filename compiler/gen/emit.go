package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/dave/jennifer/jen"
)

// Emitter renders artifacts and writes them to disk. Rendering is pure and
// kept apart from writing.
type Emitter struct {
	dialect Dialect

	mu        sync.Mutex
	templates map[string]*Templates
}

// NewEmitter returns an emitter rendering with the given dialect.
func NewEmitter(d Dialect) *Emitter {
	return &Emitter{dialect: d, templates: make(map[string]*Templates)}
}

// Path returns the path of the kind's artifact:
// <Target>/<subdir>/<snake>_<kind>.go.
func Path(k Kind, d *Descriptor, cfg Config) string {
	return filepath.Join(cfg.Target, k.Dir(), k.File(d.Names))
}

// Render returns the source text of the kind's artifact. A template override
// from cfg.TemplateDir takes precedence over the dialect renderer. Failures
// are returned as RenderError.
func (e *Emitter) Render(k Kind, d *Descriptor, cfg Config) ([]byte, error) {
	if k >= endKinds {
		return nil, &RenderError{Entity: d.Name, Kind: k, Cause: errors.New("unknown artifact kind")}
	}
	p := NewProjection(k, d, cfg)
	if cfg.TemplateDir != "" {
		t, err := e.loadTemplates(cfg.TemplateDir)
		if err != nil {
			return nil, err
		}
		if tmpl, ok := t.Lookup(k); ok {
			src, err := execute(tmpl, p, Path(k, d, cfg))
			if err != nil {
				return nil, &RenderError{Entity: d.Name, Kind: k, Cause: err}
			}
			return src, nil
		}
	}
	if e.dialect == nil {
		return nil, &RenderError{Entity: d.Name, Kind: k, Cause: errors.New("no dialect and no template override")}
	}
	f := e.file(k, p)
	if f == nil {
		return nil, &RenderError{Entity: d.Name, Kind: k, Cause: fmt.Errorf("dialect %s does not render this kind", e.dialect.Name())}
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &RenderError{Entity: d.Name, Kind: k, Cause: err}
	}
	return buf.Bytes(), nil
}

func (e *Emitter) file(k Kind, p *Projection) *jen.File {
	switch k {
	case KindEntity:
		return e.dialect.GenEntity(p)
	case KindRepository:
		return e.dialect.GenRepository(p)
	case KindManager:
		return e.dialect.GenManager(p)
	case KindService:
		return e.dialect.GenService(p)
	case KindSchema:
		return e.dialect.GenSchema(p)
	case KindRoutes:
		return e.dialect.GenRoutes(p)
	default:
		return nil
	}
}

// loadTemplates loads the overrides of a directory once per emitter.
func (e *Emitter) loadTemplates(dir string) (*Templates, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.templates[dir]; ok {
		return t, nil
	}
	var extra template.FuncMap
	if fp, ok := e.dialect.(FuncProvider); ok {
		extra = fp.Funcs()
	}
	t, err := LoadTemplates(dir, extra)
	if err != nil {
		return nil, err
	}
	e.templates[dir] = t
	return t, nil
}

// Emit renders the kind's artifact and writes it, returning the written path.
func (e *Emitter) Emit(k Kind, d *Descriptor, cfg Config) (string, error) {
	src, err := e.Render(k, d, cfg)
	if err != nil {
		return "", err
	}
	path := Path(k, d, cfg)
	if err := Write(path, src, cfg.Overwrite); err != nil {
		return "", err
	}
	return path, nil
}

// Write writes src to path, creating its directory. Unless overwrite is set,
// an existing file is left untouched and a ConflictError is returned.
func Write(path string, src []byte, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layergen: create directory for %s: %w", path, err)
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return &ConflictError{Path: path, Cause: err}
	}
	if err != nil {
		return fmt.Errorf("layergen: open %s: %w", path, err)
	}
	if _, err := f.Write(src); err != nil {
		f.Close()
		return fmt.Errorf("layergen: write %s: %w", path, err)
	}
	return f.Close()
}
