package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// genService generates the service file (services/{snake}_service.go). The
// service translates API payloads into manager calls.
func genService(p *gen.Projection) *jen.File {
	f := newFile(p)
	n := p.Names
	schema := func(name string) *jen.Statement { return jen.Qual(p.ImportPath(gen.KindSchema), name) }
	recv := func() *jen.Statement { return jen.Id("s").Op("*").Id(n.Service) }
	response := func() *jen.Statement { return jen.Op("*").Add(schema(n.Response)) }
	respond := func() *jen.Statement {
		return jen.Return(schema("New"+n.Response).Call(jen.Id("e")), jen.Nil())
	}

	f.Commentf("%s exposes %s entities to the API layer.", n.Service, n.Entity)
	f.Type().Id(n.Service).Struct(
		jen.Id("manager").Op("*").Qual(p.ImportPath(gen.KindManager), n.Manager),
	)

	f.Commentf("New%s returns a service over manager.", n.Service)
	f.Func().Id("New" + n.Service).Params(jen.Id("manager").Op("*").Qual(p.ImportPath(gen.KindManager), n.Manager)).Op("*").Id(n.Service).Block(
		jen.Return(jen.Op("&").Id(n.Service).Values(jen.Dict{jen.Id("manager"): jen.Id("manager")})),
	)

	id := p.ID()
	if id != nil {
		f.Commentf("Get returns the %s with the given %s.", noun(p), id.Attribute)
		f.Func().Params(recv()).Id("Get").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).
			Params(response(), jen.Error()).Block(
			jen.List(jen.Id("e"), jen.Err()).Op(":=").Id("s").Dot("manager").Dot("Get").Call(jen.Id("ctx"), jen.Id("id")),
			ifErr(jen.Nil(), jen.Err()),
			respond(),
		)
	}

	f.Commentf("Search returns the %s entities matching f.", n.Entity)
	f.Func().Params(recv()).Id("Search").Params(ctxParam(), jen.Id("f").Qual(p.ImportPath(gen.KindRepository), n.Filter)).
		Params(jen.Index().Add(response()), jen.Error()).Block(
		jen.List(jen.Id("es"), jen.Err()).Op(":=").Id("s").Dot("manager").Dot("Search").Call(jen.Id("ctx"), jen.Id("f")),
		ifErr(jen.Nil(), jen.Err()),
		jen.Id("out").Op(":=").Make(jen.Index().Add(response()), jen.Lit(0), jen.Len(jen.Id("es"))),
		jen.For(jen.List(jen.Id("_"), jen.Id("e")).Op(":=").Range().Id("es")).Block(
			jen.Id("out").Op("=").Append(jen.Id("out"), schema("New"+n.Response).Call(jen.Id("e"))),
		),
		jen.Return(jen.Id("out"), jen.Nil()),
	)

	f.Commentf("Create creates a %s from the request payload.", noun(p))
	f.Func().Params(recv()).Id("Create").Params(ctxParam(), jen.Id("in").Op("*").Add(schema(n.CreateInput))).
		Params(response(), jen.Error()).BlockFunc(func(group *jen.Group) {
		group.Var().Id("opts").Index().Add(entityQual(p, n.Option))
		for _, fd := range p.Optional {
			if fd.PrimaryKey {
				continue
			}
			value := jen.Id("in").Dot(fd.StructField())
			if pointer(fd) {
				value = jen.Op("*").Id("in").Dot(fd.StructField())
			}
			group.If(jen.Id("in").Dot(fd.StructField()).Op("!=").Nil()).Block(
				jen.Id("opts").Op("=").Append(jen.Id("opts"), entityQual(p, "With"+n.Entity+fd.StructField()).Call(value)),
			)
		}
		group.List(jen.Id("e"), jen.Err()).Op(":=").Id("s").Dot("manager").Dot("Create").CallFunc(func(call *jen.Group) {
			call.Id("ctx")
			for _, fd := range p.Required {
				call.Id("in").Dot(fd.StructField())
			}
			call.Id("opts").Op("...")
		})
		group.Add(ifErr(jen.Nil(), jen.Err()))
		group.Add(respond())
	})

	if id != nil {
		f.Commentf("Update applies the non-nil fields of the request payload to the %s", noun(p))
		f.Commentf("with the given %s.", id.Attribute)
		f.Func().Params(recv()).Id("Update").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type)), jen.Id("in").Op("*").Add(schema(n.UpdateInput))).
			Params(response(), jen.Error()).BlockFunc(func(group *jen.Group) {
			group.List(jen.Id("e"), jen.Err()).Op(":=").Id("s").Dot("manager").Dot("Get").Call(jen.Id("ctx"), jen.Id("id"))
			group.Add(ifErr(jen.Nil(), jen.Err()))
			for _, fd := range nonKeys(p) {
				value := jen.Id("in").Dot(fd.StructField())
				if !nillable(fd.Type) && !fd.Optional() {
					value = jen.Op("*").Id("in").Dot(fd.StructField())
				}
				group.If(jen.Id("in").Dot(fd.StructField()).Op("!=").Nil()).Block(
					jen.Id("e").Dot(fd.StructField()).Op("=").Add(value),
				)
			}
			group.If(jen.Err().Op(":=").Id("s").Dot("manager").Dot("Update").Call(jen.Id("ctx"), jen.Id("e")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			)
			group.Add(respond())
		})

		f.Commentf("Delete removes the %s with the given %s.", noun(p), id.Attribute)
		f.Func().Params(recv()).Id("Delete").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).Error().Block(
			jen.Return(jen.Id("s").Dot("manager").Dot("Delete").Call(jen.Id("ctx"), jen.Id("id"))),
		)
	}
	return f
}
