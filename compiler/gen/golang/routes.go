package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// genRoutes generates the HTTP routes file (routes/{snake}_routes.go) over
// the chi router. Routes addressing a single entity are only generated for
// entities with a single scalar primary key.
func genRoutes(p *gen.Projection) *jen.File {
	f := newFile(p)
	n := p.Names
	id := p.ID()
	if id != nil && !id.Type.Scalar() {
		id = nil
	}

	f.Commentf("%s is the mount path of the %s routes and %s its API tag.", n.Entity+"Prefix", noun(p), n.Entity+"Tag")
	f.Const().Defs(
		jen.Id(n.Entity+"Prefix").Op("=").Lit("/"+strings.Trim(p.Prefix, "/")),
		jen.Id(n.Entity+"Tag").Op("=").Lit(p.Tag),
	)

	f.Commentf("%s serves the %s API.", n.Routes, n.Entity)
	f.Type().Id(n.Routes).Struct(
		jen.Id("service").Op("*").Qual(p.ImportPath(gen.KindService), n.Service),
	)

	f.Commentf("New%s returns the routes over service.", n.Routes)
	f.Func().Id("New" + n.Routes).Params(jen.Id("service").Op("*").Qual(p.ImportPath(gen.KindService), n.Service)).Op("*").Id(n.Routes).Block(
		jen.Return(jen.Op("&").Id(n.Routes).Values(jen.Dict{jen.Id("service"): jen.Id("service")})),
	)

	f.Commentf("Register mounts the routes on r under %sPrefix.", n.Entity)
	f.Func().Params(routesRecv(p)).Id("Register").Params(jen.Id("r").Qual(chiPkg, "Router")).Block(
		jen.Id("r").Dot("Route").Call(jen.Id(n.Entity+"Prefix"), jen.Func().Params(jen.Id("r").Qual(chiPkg, "Router")).BlockFunc(func(group *jen.Group) {
			group.Id("r").Dot("Get").Call(jen.Lit("/"), jen.Id("rt").Dot("search"))
			group.Id("r").Dot("Post").Call(jen.Lit("/"), jen.Id("rt").Dot("create"))
			if id != nil {
				group.Id("r").Dot("Get").Call(jen.Lit("/{id}"), jen.Id("rt").Dot("get"))
				group.Id("r").Dot("Put").Call(jen.Lit("/{id}"), jen.Id("rt").Dot("update"))
				group.Id("r").Dot("Delete").Call(jen.Lit("/{id}"), jen.Id("rt").Dot("delete"))
			}
		})),
	)

	genRoutesSearch(f, p)
	genRoutesCreate(f, p)
	if id != nil {
		genRoutesGet(f, p)
		genRoutesUpdate(f, p)
		genRoutesDelete(f, p)
		genRoutesParseID(f, p, id)
	}
	genRoutesHelpers(f, p)
	return f
}

func routesRecv(p *gen.Projection) *jen.Statement {
	return jen.Id("rt").Op("*").Id(p.Names.Routes)
}

func handlerParams() []jen.Code {
	return []jen.Code{
		jen.Id("w").Qual(httpPkg, "ResponseWriter"),
		jen.Id("req").Op("*").Qual(httpPkg, "Request"),
	}
}

func status(name string) *jen.Statement { return jen.Qual(httpPkg, name) }

// badRequest returns "rt.writeError(w, http.StatusBadRequest, ...); return".
func badRequest(err jen.Code) []jen.Code {
	return []jen.Code{
		jen.Id("rt").Dot("writeError").Call(jen.Id("w"), status("StatusBadRequest"), err),
		jen.Return(),
	}
}

func failed() *jen.Statement {
	return jen.If(jen.Err().Op("!=").Nil()).Block(
		jen.Id("rt").Dot("fail").Call(jen.Id("w"), jen.Err()),
		jen.Return(),
	)
}

func withID() []jen.Code {
	return []jen.Code{
		jen.List(jen.Id("id"), jen.Id("ok")).Op(":=").Id("rt").Dot("parseID").Call(jen.Id("w"), jen.Id("req")),
		jen.If(jen.Op("!").Id("ok")).Block(jen.Return()),
	}
}

func genRoutesSearch(f *jen.File, p *gen.Projection) {
	f.Func().Params(routesRecv(p)).Id("search").Params(handlerParams()...).BlockFunc(func(group *jen.Group) {
		group.Var().Id("f").Qual(p.ImportPath(gen.KindRepository), p.Names.Filter)
		group.Id("q").Op(":=").Id("req").Dot("URL").Dot("Query").Call()
		for _, fd := range filterFields(p) {
			sf := fd.StructField()
			get := jen.Id("v").Op(":=").Id("q").Dot("Get").Call(jen.Lit(fd.Attribute))
			expr, ok := parse(fd.Type, jen.Id("v"))
			if !ok {
				group.If(get, jen.Id("v").Op("!=").Lit("")).Block(
					jen.Id("f").Dot(sf).Op("=").Op("&").Id("v"),
				)
				continue
			}
			group.If(get, jen.Id("v").Op("!=").Lit("")).Block(
				append([]jen.Code{
					jen.List(jen.Id("x"), jen.Err()).Op(":=").Add(expr),
					jen.If(jen.Err().Op("!=").Nil()).Block(
						badRequest(jen.Qual(fmtPkg, "Errorf").Call(jen.Lit("invalid "+fd.Attribute+": %w"), jen.Err()))...,
					),
				}, jen.Id("f").Dot(sf).Op("=").Op("&").Id("x"))...,
			)
		}
		for _, pp := range pageParams {
			group.If(jen.Id("v").Op(":=").Id("q").Dot("Get").Call(jen.Lit(pp.param)), jen.Id("v").Op("!=").Lit("")).Block(
				jen.List(jen.Id("n"), jen.Err()).Op(":=").Qual(strconvPkg, "Atoi").Call(jen.Id("v")),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					badRequest(jen.Qual(fmtPkg, "Errorf").Call(jen.Lit("invalid "+pp.param+": %w"), jen.Err()))...,
				),
				jen.Id("f").Dot(pp.field).Op("=").Id("n"),
			)
		}
		group.List(jen.Id("out"), jen.Err()).Op(":=").Id("rt").Dot("service").Dot("Search").Call(jen.Id("req").Dot("Context").Call(), jen.Id("f"))
		group.Add(failed())
		group.Id("rt").Dot("writeJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id("out"))
	})
}

// decode returns the statements decoding the request body into in.
func decode(p *gen.Projection, input string) []jen.Code {
	return []jen.Code{
		jen.Var().Id("in").Qual(p.ImportPath(gen.KindSchema), input),
		jen.If(jen.Err().Op(":=").Qual(jsonPkg, "NewDecoder").Call(jen.Id("req").Dot("Body")).Dot("Decode").Call(jen.Op("&").Id("in")), jen.Err().Op("!=").Nil()).Block(
			badRequest(jen.Err())...,
		),
	}
}

func genRoutesCreate(f *jen.File, p *gen.Projection) {
	body := decode(p, p.Names.CreateInput)
	body = append(body,
		jen.List(jen.Id("out"), jen.Err()).Op(":=").Id("rt").Dot("service").Dot("Create").Call(jen.Id("req").Dot("Context").Call(), jen.Op("&").Id("in")),
		failed(),
		jen.Id("rt").Dot("writeJSON").Call(jen.Id("w"), status("StatusCreated"), jen.Id("out")),
	)
	f.Func().Params(routesRecv(p)).Id("create").Params(handlerParams()...).Block(body...)
}

func genRoutesGet(f *jen.File, p *gen.Projection) {
	body := withID()
	body = append(body,
		jen.List(jen.Id("out"), jen.Err()).Op(":=").Id("rt").Dot("service").Dot("Get").Call(jen.Id("req").Dot("Context").Call(), jen.Id("id")),
		failed(),
		jen.Id("rt").Dot("writeJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id("out")),
	)
	f.Func().Params(routesRecv(p)).Id("get").Params(handlerParams()...).Block(body...)
}

func genRoutesUpdate(f *jen.File, p *gen.Projection) {
	body := withID()
	body = append(body, decode(p, p.Names.UpdateInput)...)
	body = append(body,
		jen.List(jen.Id("out"), jen.Err()).Op(":=").Id("rt").Dot("service").Dot("Update").Call(jen.Id("req").Dot("Context").Call(), jen.Id("id"), jen.Op("&").Id("in")),
		failed(),
		jen.Id("rt").Dot("writeJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id("out")),
	)
	f.Func().Params(routesRecv(p)).Id("update").Params(handlerParams()...).Block(body...)
}

func genRoutesDelete(f *jen.File, p *gen.Projection) {
	body := withID()
	body = append(body,
		jen.If(jen.Err().Op(":=").Id("rt").Dot("service").Dot("Delete").Call(jen.Id("req").Dot("Context").Call(), jen.Id("id")), jen.Err().Op("!=").Nil()).Block(
			jen.Id("rt").Dot("fail").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		jen.Id("w").Dot("WriteHeader").Call(status("StatusNoContent")),
	)
	f.Func().Params(routesRecv(p)).Id("delete").Params(handlerParams()...).Block(body...)
}

// genRoutesParseID generates the parser of the {id} path parameter. It
// writes a 400 response on malformed identifiers.
func genRoutesParseID(f *jen.File, p *gen.Projection, id *gen.Field) {
	f.Func().Params(routesRecv(p)).Id("parseID").Params(handlerParams()...).
		Params(jen.Id("id").Add(baseType(id.Type)), jen.Id("ok").Bool()).BlockFunc(func(group *jen.Group) {
		group.Id("v").Op(":=").Qual(chiPkg, "URLParam").Call(jen.Id("req"), jen.Lit("id"))
		expr, ok := parse(id.Type, jen.Id("v"))
		if !ok {
			group.Return(jen.Id("v"), jen.True())
			return
		}
		group.List(jen.Id("id"), jen.Err()).Op(":=").Add(expr)
		group.If(jen.Err().Op("!=").Nil()).Block(
			jen.Id("rt").Dot("writeError").Call(jen.Id("w"), status("StatusBadRequest"),
				jen.Qual(fmtPkg, "Errorf").Call(jen.Lit("invalid "+id.Attribute+" %q: %w"), jen.Id("v"), jen.Err())),
			jen.Return(jen.Id("id"), jen.False()),
		)
		group.Return(jen.Id("id"), jen.True())
	})
}

func genRoutesHelpers(f *jen.File, p *gen.Projection) {
	f.Func().Params(routesRecv(p)).Id("writeJSON").Params(
		jen.Id("w").Qual(httpPkg, "ResponseWriter"),
		jen.Id("code").Int(),
		jen.Id("v").Interface(),
	).Block(
		jen.Id("w").Dot("Header").Call().Dot("Set").Call(jen.Lit("Content-Type"), jen.Lit("application/json")),
		jen.Id("w").Dot("WriteHeader").Call(jen.Id("code")),
		jen.Id("_").Op("=").Qual(jsonPkg, "NewEncoder").Call(jen.Id("w")).Dot("Encode").Call(jen.Id("v")),
	)

	f.Func().Params(routesRecv(p)).Id("writeError").Params(
		jen.Id("w").Qual(httpPkg, "ResponseWriter"),
		jen.Id("code").Int(),
		jen.Err().Error(),
	).Block(
		jen.Id("rt").Dot("writeJSON").Call(jen.Id("w"), jen.Id("code"), jen.Map(jen.String()).String().Values(jen.Dict{
			jen.Lit("error"): jen.Err().Dot("Error").Call(),
		})),
	)

	f.Comment("fail maps service errors to responses.")
	f.Func().Params(routesRecv(p)).Id("fail").Params(
		jen.Id("w").Qual(httpPkg, "ResponseWriter"),
		jen.Err().Error(),
	).Block(
		jen.If(jen.Qual(errorsPkg, "Is").Call(jen.Err(), jen.Qual(p.ImportPath(gen.KindRepository), notFound(p)))).Block(
			jen.Id("rt").Dot("writeError").Call(jen.Id("w"), status("StatusNotFound"), jen.Err()),
			jen.Return(),
		),
		jen.Id("rt").Dot("writeError").Call(jen.Id("w"), status("StatusInternalServerError"), jen.Err()),
	)
}

