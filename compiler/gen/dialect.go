package gen

import (
	"path"
	"text/template"

	"github.com/dave/jennifer/jen"
)

// Dialect renders the built-in artifacts of a target language. Each method
// is called with the projection of its kind and returns the file to render.
//
// The Go dialect lives in compiler/gen/golang:
//
//	g := gen.NewGenerator(golang.New())
//	paths, err := g.Generate(ctx, cfg)
type Dialect interface {
	// Name returns the dialect name (e.g., "golang").
	Name() string
	// GenEntity generates the entity type (entities/{snake}_entity.go).
	GenEntity(p *Projection) *jen.File
	// GenRepository generates the storage access layer (repositories/{snake}_repository.go).
	GenRepository(p *Projection) *jen.File
	// GenManager generates the domain logic layer (managers/{snake}_manager.go).
	GenManager(p *Projection) *jen.File
	// GenService generates the service layer (services/{snake}_service.go).
	GenService(p *Projection) *jen.File
	// GenSchema generates the API payload types (schemas/{snake}_schema.go).
	GenSchema(p *Projection) *jen.File
	// GenRoutes generates the HTTP routes (routes/{snake}_routes.go).
	GenRoutes(p *Projection) *jen.File
}

// FuncProvider is implemented by dialects that expose template functions to
// user template overrides, e.g. a "goType" function.
type FuncProvider interface {
	Funcs() template.FuncMap
}

// Projection is the kind-specific view of a descriptor an artifact is
// rendered from.
type Projection struct {
	*Descriptor
	// Kind is the artifact kind being rendered.
	Kind Kind
	// Package is the Go package name of the artifact.
	Package string
	// Module is the import path of the output root.
	Module string
	// Header is the generated-file header comment.
	Header string
	// SearchFields holds the filterable fields (all non-primary-key fields)
	// for the kinds exposing a search operation.
	SearchFields []*Field
	// Prefix and Tag are the resolved API route prefix and tag.
	Prefix string
	Tag    string
}

// NewProjection returns the projection of the descriptor for the kind.
func NewProjection(k Kind, d *Descriptor, cfg Config) *Projection {
	p := &Projection{
		Descriptor: d,
		Kind:       k,
		Package:    k.Dir(),
		Module:     cfg.Package,
		Header:     cfg.Header,
		Prefix:     d.Names.RoutePrefix,
		Tag:        d.Names.Tag,
	}
	if cfg.APIPrefix != "" {
		p.Prefix = cfg.APIPrefix
	}
	if cfg.APITag != "" {
		p.Tag = cfg.APITag
	}
	switch k {
	case KindRepository, KindManager, KindService, KindRoutes:
		p.SearchFields = d.SearchFields()
	}
	return p
}

// ImportPath returns the import path of the package of the given kind.
func (p *Projection) ImportPath(k Kind) string {
	return path.Join(p.Module, k.Dir())
}

// Data returns the projection as template data. Templates execute with
// missingkey=error, so a key absent from this map fails rendering.
func (p *Projection) Data() map[string]any {
	imports := make(map[string]string, len(Kinds))
	for _, k := range Kinds {
		imports[k.Dir()] = p.ImportPath(k)
	}
	return map[string]any{
		"Kind":          p.Kind.String(),
		"Package":       p.Package,
		"Module":        p.Module,
		"Header":        p.Header,
		"Imports":       imports,
		"Entity":        p.Name,
		"Table":         p.Table,
		"Comment":       p.Comment,
		"Names":         p.Names,
		"Fields":        p.Fields,
		"Required":      p.Required,
		"Optional":      p.Optional,
		"Relationships": p.Relationships,
		"ID":            p.ID(),
		"SearchFields":  p.SearchFields,
		"Prefix":        p.Prefix,
		"Tag":           p.Tag,
	}
}
