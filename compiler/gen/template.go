package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/syssam/layergen/compiler/naming"
)

// TemplateExt is the file extension of template overrides.
const TemplateExt = ".tmpl"

// Templates holds user template overrides loaded from a directory. A file
// named after an artifact kind ("entity.tmpl", "api_routes.tmpl", ...)
// replaces the built-in renderer of that kind.
type Templates struct {
	dir   string
	funcs template.FuncMap
	byKey map[Kind]*template.Template
}

// Funcs are the functions available to every template override.
var Funcs = template.FuncMap{
	"pascal":   naming.Pascal,
	"camel":    naming.Camel,
	"snake":    naming.Snake,
	"plural":   naming.Plural,
	"param":    naming.Param,
	"readable": naming.Readable,
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"join":     strings.Join,
}

// LoadTemplates parses the overrides found in dir. Kinds without a template
// file are left to the built-in renderers. The extra functions are merged
// over Funcs.
func LoadTemplates(dir string, extra template.FuncMap) (*Templates, error) {
	t := &Templates{dir: dir, funcs: make(template.FuncMap), byKey: make(map[Kind]*template.Template)}
	for name, fn := range Funcs {
		t.funcs[name] = fn
	}
	for name, fn := range extra {
		t.funcs[name] = fn
	}
	for _, k := range Kinds {
		file := filepath.Join(dir, k.String()+TemplateExt)
		text, err := os.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("layergen: read template: %w", err)
		}
		tmpl, err := template.New(filepath.Base(file)).
			Option("missingkey=error").
			Funcs(t.funcs).
			Parse(string(text))
		if err != nil {
			return nil, &RenderError{Kind: k, Cause: fmt.Errorf("parse %s: %w", file, err)}
		}
		t.byKey[k] = tmpl
	}
	return t, nil
}

// Lookup returns the override of the kind, if any.
func (t *Templates) Lookup(k Kind) (*template.Template, bool) {
	if t == nil {
		return nil, false
	}
	tmpl, ok := t.byKey[k]
	return tmpl, ok
}

// Dir returns the directory the overrides were loaded from.
func (t *Templates) Dir() string { return t.dir }

// execute renders a template override and formats the result with
// goimports. The filename is only used to resolve imports.
func execute(tmpl *template.Template, p *Projection, filename string) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p.Data()); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", tmpl.Name(), err)
	}
	formatted, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filepath.Base(filename), err)
	}
	return formatted, nil
}
