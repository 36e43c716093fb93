// Package golang renders the built-in Go artifacts of an entity with
// Jennifer. It implements gen.Dialect.
//
// Generated code structure, for an entity Zone:
//
//	{output}/
//	├── entities/zone_entity.go          # Zone, ZoneOption, NewZone, column constants
//	├── repositories/zone_repository.go  # ZoneRepository, ZoneFilter over database/sql
//	├── managers/zone_manager.go         # ZoneManager
//	├── services/zone_service.go         # ZoneService
//	├── schemas/zone_schema.go           # ZoneCreate, ZoneUpdate, ZoneResponse
//	└── routes/zone_routes.go            # ZoneRoutes over chi
//
// Every exported identifier is prefixed with the entity name, so the
// artifacts of several entities share their packages.
package golang

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// Import paths referenced by generated code.
const (
	uuidPkg    = "github.com/google/uuid"
	chiPkg     = "github.com/go-chi/chi/v5"
	timePkg    = "time"
	sqlPkg     = "database/sql"
	jsonPkg    = "encoding/json"
	httpPkg    = "net/http"
	errorsPkg  = "errors"
	fmtPkg     = "fmt"
	stringsPkg = "strings"
	strconvPkg = "strconv"
	contextPkg = "context"
)

// Dialect renders Go artifacts.
type Dialect struct{}

// New returns the Go dialect.
func New() *Dialect { return &Dialect{} }

// Name implements gen.Dialect.
func (*Dialect) Name() string { return "golang" }

// Funcs implements gen.FuncProvider. Template overrides can call goType and
// baseType on fields, e.g. {{ goType $f }}.
func (*Dialect) Funcs() template.FuncMap {
	return template.FuncMap{
		"goType":   func(f *gen.Field) string { return fmt.Sprintf("%#v", goType(f)) },
		"baseType": func(f *gen.Field) string { return fmt.Sprintf("%#v", baseType(f.Type)) },
	}
}

// GenEntity implements gen.Dialect.
func (*Dialect) GenEntity(p *gen.Projection) *jen.File { return genEntity(p) }

// GenRepository implements gen.Dialect.
func (*Dialect) GenRepository(p *gen.Projection) *jen.File { return genRepository(p) }

// GenManager implements gen.Dialect.
func (*Dialect) GenManager(p *gen.Projection) *jen.File { return genManager(p) }

// GenService implements gen.Dialect.
func (*Dialect) GenService(p *gen.Projection) *jen.File { return genService(p) }

// GenSchema implements gen.Dialect.
func (*Dialect) GenSchema(p *gen.Projection) *jen.File { return genSchema(p) }

// GenRoutes implements gen.Dialect.
func (*Dialect) GenRoutes(p *gen.Projection) *jen.File { return genRoutes(p) }

// newFile creates a new file of the projection's package with its header.
func newFile(p *gen.Projection) *jen.File {
	f := jen.NewFile(p.Package)
	if p.Header != "" {
		f.HeaderComment(p.Header)
	}
	f.ImportName(uuidPkg, "uuid")
	f.ImportName(chiPkg, "chi")
	for _, k := range gen.Kinds {
		f.ImportName(p.ImportPath(k), k.Dir())
	}
	return f
}

// entityQual returns a qualified reference to an identifier of the
// entities package.
func entityQual(p *gen.Projection, name string) *jen.Statement {
	return jen.Qual(p.ImportPath(gen.KindEntity), name)
}

// columnConst returns the name of the column constant of a field,
// e.g. ZoneColumnWorldID.
func columnConst(p *gen.Projection, f *gen.Field) string {
	return p.Names.Entity + "Column" + f.StructField()
}

// defaultConst returns the name of the default value constant of a field,
// e.g. WorldDefaultSeed.
func defaultConst(p *gen.Projection, f *gen.Field) string {
	return p.Names.Entity + "Default" + f.StructField()
}

// noun returns the lower-case readable entity name used in messages.
func noun(p *gen.Projection) string {
	return strings.ToLower(p.Names.Readable)
}

func ctxParam() *jen.Statement {
	return jen.Id("ctx").Qual(contextPkg, "Context")
}

// ifErr returns "if err != nil { return results... }".
func ifErr(results ...jen.Code) *jen.Statement {
	return jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(results...))
}

// Pagination fields of the filter struct and their query parameters.
// Columns such as limit or offset stay usable as filters.
var pageParams = []struct{ field, param string }{
	{"PageLimit", "page_limit"},
	{"PageOffset", "page_offset"},
}

// filterFields returns the search fields usable as equality filters.
func filterFields(p *gen.Projection) []*gen.Field {
	var fs []*gen.Field
	for _, f := range p.SearchFields {
		switch sf := f.StructField(); {
		case !f.Type.Scalar(), sf == "PageLimit", sf == "PageOffset":
			continue
		}
		fs = append(fs, f)
	}
	return fs
}

// nonKeys returns the fields that are not primary keys.
func nonKeys(p *gen.Projection) []*gen.Field {
	var fs []*gen.Field
	for _, f := range p.Fields {
		if !f.PrimaryKey {
			fs = append(fs, f)
		}
	}
	return fs
}
