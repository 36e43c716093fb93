package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// genManager generates the manager file (managers/{snake}_manager.go).
func genManager(p *gen.Projection) *jen.File {
	f := newFile(p)
	n := p.Names
	repo := func(name string) *jen.Statement { return jen.Qual(p.ImportPath(gen.KindRepository), name) }
	recv := func() *jen.Statement { return jen.Id("m").Op("*").Id(n.Manager) }

	f.Commentf("%s implements the domain logic of %s entities on top of", n.Manager, n.Entity)
	f.Commentf("the %s.", n.Repository)
	f.Type().Id(n.Manager).Struct(
		jen.Id("repo").Op("*").Add(repo(n.Repository)),
	)

	f.Commentf("New%s returns a manager over repo.", n.Manager)
	f.Func().Id("New" + n.Manager).Params(jen.Id("repo").Op("*").Add(repo(n.Repository))).Op("*").Id(n.Manager).Block(
		jen.Return(jen.Op("&").Id(n.Manager).Values(jen.Dict{jen.Id("repo"): jen.Id("repo")})),
	)

	id := p.ID()
	if id != nil {
		f.Commentf("Get returns the %s with the given %s.", noun(p), id.Attribute)
		f.Func().Params(recv()).Id("Get").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).
			Params(entityPtr(p), jen.Error()).Block(
			jen.Return(jen.Id("m").Dot("repo").Dot("Get").Call(jen.Id("ctx"), jen.Id("id"))),
		)
	}

	f.Commentf("Search returns the %s entities matching f.", n.Entity)
	f.Func().Params(recv()).Id("Search").Params(ctxParam(), jen.Id("f").Add(repo(n.Filter))).
		Params(jen.Index().Add(entityPtr(p)), jen.Error()).Block(
		jen.Return(jen.Id("m").Dot("repo").Dot("Search").Call(jen.Id("ctx"), jen.Id("f"))),
	)

	f.Commentf("Create builds a %s from its required fields and options and stores it.", noun(p))
	f.Func().Params(recv()).Id("Create").ParamsFunc(func(group *jen.Group) {
		group.Add(ctxParam())
		for _, fd := range p.Required {
			group.Id(fd.Param()).Add(baseType(fd.Type))
		}
		group.Id("opts").Op("...").Add(entityQual(p, n.Option))
	}).Params(entityPtr(p), jen.Error()).Block(
		jen.Id("e").Op(":=").Add(entityQual(p, n.Constructor)).CallFunc(func(call *jen.Group) {
			for _, fd := range p.Required {
				call.Id(fd.Param())
			}
			call.Id("opts").Op("...")
		}),
		jen.If(jen.Err().Op(":=").Id("m").Dot("repo").Dot("Create").Call(jen.Id("ctx"), jen.Id("e")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Id("e"), jen.Nil()),
	)

	if id != nil {
		f.Commentf("Update stores all fields of e.")
		f.Func().Params(recv()).Id("Update").Params(ctxParam(), jen.Id("e").Add(entityPtr(p))).Error().Block(
			jen.Return(jen.Id("m").Dot("repo").Dot("Update").Call(jen.Id("ctx"), jen.Id("e"))),
		)

		f.Commentf("Delete removes the %s with the given %s.", noun(p), id.Attribute)
		f.Func().Params(recv()).Id("Delete").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).Error().Block(
			jen.Return(jen.Id("m").Dot("repo").Dot("Delete").Call(jen.Id("ctx"), jen.Id("id"))),
		)
	}
	return f
}
