package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// genRepository generates the repository file
// (repositories/{snake}_repository.go). Identifier-based operations are
// only generated for entities with a single primary key.
func genRepository(p *gen.Projection) *jen.File {
	f := newFile(p)
	n := p.Names

	f.Commentf("%s is returned when no %s matches the given identifier.", notFound(p), noun(p))
	f.Var().Id(notFound(p)).Op("=").Qual(errorsPkg, "New").Call(jen.Lit(noun(p) + " not found"))

	genFilter(f, p)

	f.Commentf("%s provides storage access to %s entities over database/sql.", n.Repository, n.Entity)
	f.Type().Id(n.Repository).Struct(
		jen.Id("db").Op("*").Qual(sqlPkg, "DB"),
		jen.Id("bind").Func().Params(jen.Int()).String(),
	)

	f.Commentf("New%s returns a repository over db. bind formats the n-th (1-based)", n.Repository)
	f.Comment(`query placeholder, e.g. "$1" for Postgres; nil uses "?".`)
	f.Func().Id("New" + n.Repository).Params(
		jen.Id("db").Op("*").Qual(sqlPkg, "DB"),
		jen.Id("bind").Func().Params(jen.Id("n").Int()).String(),
	).Op("*").Id(n.Repository).Block(
		jen.If(jen.Id("bind").Op("==").Nil()).Block(
			jen.Id("bind").Op("=").Func().Params(jen.Int()).String().Block(jen.Return(jen.Lit("?"))),
		),
		jen.Return(jen.Op("&").Id(n.Repository).Values(jen.Dict{
			jen.Id("db"):   jen.Id("db"),
			jen.Id("bind"): jen.Id("bind"),
		})),
	)

	if id := p.ID(); id != nil {
		genRepositoryGet(f, p, id)
	}
	genRepositorySearch(f, p)
	genRepositoryCreate(f, p)
	if id := p.ID(); id != nil {
		genRepositoryUpdate(f, p, id)
		genRepositoryDelete(f, p, id)
		f.Func().Params(repoRecv(p)).Id("affected").Params(jen.Id("res").Qual(sqlPkg, "Result")).Error().Block(
			jen.List(jen.Id("n"), jen.Err()).Op(":=").Id("res").Dot("RowsAffected").Call(),
			ifErr(jen.Err()),
			jen.If(jen.Id("n").Op("==").Lit(0)).Block(jen.Return(jen.Id(notFound(p)))),
			jen.Return(jen.Nil()),
		)
	}

	f.Func().Params(repoRecv(p)).Id("selectQuery").Params().String().Block(
		jen.Return(jen.Lit("SELECT ").Op("+").Qual(stringsPkg, "Join").Call(entityQual(p, n.Entity+"Columns"), jen.Lit(", ")).
			Op("+").Lit(" FROM ").Op("+").Add(entityQual(p, n.Entity+"Table"))),
	)
	genRepositoryScan(f, p)
	genRepositoryValues(f, p)
	return f
}

func notFound(p *gen.Projection) string { return "Err" + p.Names.Entity + "NotFound" }

func repoRecv(p *gen.Projection) *jen.Statement {
	return jen.Id("r").Op("*").Id(p.Names.Repository)
}

func entityPtr(p *gen.Projection) *jen.Statement {
	return jen.Op("*").Add(entityQual(p, p.Names.Entity))
}

func column(p *gen.Projection, fd *gen.Field) *jen.Statement {
	return entityQual(p, columnConst(p, fd))
}

// genFilter generates the search criteria struct.
func genFilter(f *jen.File, p *gen.Projection) {
	n := p.Names
	f.Commentf("%s holds the search criteria of %s entities. Nil criteria are ignored.", n.Filter, n.Entity)
	f.Type().Id(n.Filter).StructFunc(func(group *jen.Group) {
		for _, fd := range filterFields(p) {
			group.Id(fd.StructField()).Op("*").Add(baseType(fd.Type))
		}
		group.Comment("PageLimit and PageOffset paginate the results when positive.")
		group.Id("PageLimit").Int()
		group.Id("PageOffset").Int()
	})
}

func genRepositoryGet(f *jen.File, p *gen.Projection, id *gen.Field) {
	f.Commentf("Get returns the %s with the given %s.", noun(p), id.Attribute)
	f.Func().Params(repoRecv(p)).Id("Get").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).
		Params(entityPtr(p), jen.Error()).Block(
		jen.Id("query").Op(":=").Id("r").Dot("selectQuery").Call().Op("+").Lit(" WHERE ").Op("+").
			Add(column(p, id)).Op("+").Lit(" = ").Op("+").Id("r").Dot("bind").Call(jen.Lit(1)),
		jen.List(jen.Id("e"), jen.Err()).Op(":=").Id("r").Dot("scan").Call(
			jen.Id("r").Dot("db").Dot("QueryRowContext").Call(jen.Id("ctx"), jen.Id("query"), jen.Id("id")),
		),
		jen.If(jen.Qual(errorsPkg, "Is").Call(jen.Err(), jen.Qual(sqlPkg, "ErrNoRows"))).Block(
			jen.Return(jen.Nil(), jen.Id(notFound(p))),
		),
		jen.Return(jen.Id("e"), jen.Err()),
	)
}

func genRepositorySearch(f *jen.File, p *gen.Projection) {
	f.Commentf("Search returns the %s entities matching all criteria of f.", p.Names.Entity)
	f.Func().Params(repoRecv(p)).Id("Search").Params(ctxParam(), jen.Id("f").Id(p.Names.Filter)).
		Params(jen.Index().Add(entityPtr(p)), jen.Error()).BlockFunc(func(group *jen.Group) {
		group.Var().Defs(
			jen.Id("where").Index().String(),
			jen.Id("args").Index().Interface(),
		)
		for _, fd := range filterFields(p) {
			group.If(jen.Id("f").Dot(fd.StructField()).Op("!=").Nil()).Block(
				jen.Id("args").Op("=").Append(jen.Id("args"), jen.Op("*").Id("f").Dot(fd.StructField())),
				jen.Id("where").Op("=").Append(jen.Id("where"),
					column(p, fd).Op("+").Lit(" = ").Op("+").Id("r").Dot("bind").Call(jen.Len(jen.Id("args")))),
			)
		}
		group.Id("query").Op(":=").Id("r").Dot("selectQuery").Call()
		group.If(jen.Len(jen.Id("where")).Op(">").Lit(0)).Block(
			jen.Id("query").Op("+=").Lit(" WHERE ").Op("+").Qual(stringsPkg, "Join").Call(jen.Id("where"), jen.Lit(" AND ")),
		)
		group.If(jen.Id("f").Dot("PageLimit").Op(">").Lit(0)).Block(
			jen.Id("query").Op("+=").Lit(" LIMIT ").Op("+").Qual(strconvPkg, "Itoa").Call(jen.Id("f").Dot("PageLimit")),
		)
		group.If(jen.Id("f").Dot("PageOffset").Op(">").Lit(0)).Block(
			jen.Id("query").Op("+=").Lit(" OFFSET ").Op("+").Qual(strconvPkg, "Itoa").Call(jen.Id("f").Dot("PageOffset")),
		)
		group.List(jen.Id("rows"), jen.Err()).Op(":=").Id("r").Dot("db").Dot("QueryContext").Call(
			jen.Id("ctx"), jen.Id("query"), jen.Id("args").Op("..."),
		)
		group.Add(ifErr(jen.Nil(), jen.Err()))
		group.Defer().Id("rows").Dot("Close").Call()
		group.Var().Id("result").Index().Add(entityPtr(p))
		group.For(jen.Id("rows").Dot("Next").Call()).Block(
			jen.List(jen.Id("e"), jen.Err()).Op(":=").Id("r").Dot("scan").Call(jen.Id("rows")),
			ifErr(jen.Nil(), jen.Err()),
			jen.Id("result").Op("=").Append(jen.Id("result"), jen.Id("e")),
		)
		group.Return(jen.Id("result"), jen.Id("rows").Dot("Err").Call())
	})
}

func genRepositoryCreate(f *jen.File, p *gen.Projection) {
	f.Comment("Create inserts e. Unset primary keys are left to the database.")
	f.Func().Params(repoRecv(p)).Id("Create").Params(ctxParam(), jen.Id("e").Add(entityPtr(p))).Error().BlockFunc(func(group *jen.Group) {
		group.List(jen.Id("columns"), jen.Id("values"), jen.Err()).Op(":=").Id("r").Dot("values").Call(jen.Id("e"))
		group.Add(ifErr(jen.Err()))
		for _, pk := range p.PrimaryKeys() {
			add := []jen.Code{
				jen.Id("columns").Op("=").Append(jen.Id("columns"), column(p, pk)),
			}
			if pointer(pk) {
				add = append(add, jen.Id("values").Op("=").Append(jen.Id("values"), jen.Op("*").Id("e").Dot(pk.StructField())))
				group.If(jen.Id("e").Dot(pk.StructField()).Op("!=").Nil()).Block(add...)
				continue
			}
			add = append(add, jen.Id("values").Op("=").Append(jen.Id("values"), jen.Id("e").Dot(pk.StructField())))
			for _, c := range add {
				group.Add(c)
			}
		}
		group.Id("binds").Op(":=").Make(jen.Index().String(), jen.Len(jen.Id("values")))
		group.For(jen.Id("i").Op(":=").Range().Id("binds")).Block(
			jen.Id("binds").Index(jen.Id("i")).Op("=").Id("r").Dot("bind").Call(jen.Id("i").Op("+").Lit(1)),
		)
		group.Id("query").Op(":=").Lit("INSERT INTO ").Op("+").Add(entityQual(p, p.Names.Entity+"Table")).
			Op("+").Lit(" (").Op("+").Qual(stringsPkg, "Join").Call(jen.Id("columns"), jen.Lit(", ")).
			Op("+").Lit(") VALUES (").Op("+").Qual(stringsPkg, "Join").Call(jen.Id("binds"), jen.Lit(", ")).Op("+").Lit(")")
		group.List(jen.Id("_"), jen.Err()).Op("=").Id("r").Dot("db").Dot("ExecContext").Call(
			jen.Id("ctx"), jen.Id("query"), jen.Id("values").Op("..."),
		)
		group.Return(jen.Err())
	})
}

func genRepositoryUpdate(f *jen.File, p *gen.Projection, id *gen.Field) {
	f.Commentf("Update stores all fields of e, matched by its %s.", id.Attribute)
	f.Func().Params(repoRecv(p)).Id("Update").Params(ctxParam(), jen.Id("e").Add(entityPtr(p))).Error().BlockFunc(func(group *jen.Group) {
		idValue := jen.Id("e").Dot(id.StructField())
		if pointer(id) {
			group.If(jen.Id("e").Dot(id.StructField()).Op("==").Nil()).Block(
				jen.Return(jen.Qual(errorsPkg, "New").Call(jen.Lit("update " + noun(p) + ": missing " + id.Attribute))),
			)
			idValue = jen.Op("*").Id("e").Dot(id.StructField())
		}
		group.List(jen.Id("columns"), jen.Id("values"), jen.Err()).Op(":=").Id("r").Dot("values").Call(jen.Id("e"))
		group.Add(ifErr(jen.Err()))
		group.Id("sets").Op(":=").Make(jen.Index().String(), jen.Len(jen.Id("columns")))
		group.For(jen.List(jen.Id("i"), jen.Id("c")).Op(":=").Range().Id("columns")).Block(
			jen.Id("sets").Index(jen.Id("i")).Op("=").Id("c").Op("+").Lit(" = ").Op("+").Id("r").Dot("bind").Call(jen.Id("i").Op("+").Lit(1)),
		)
		group.Id("values").Op("=").Append(jen.Id("values"), idValue)
		group.Id("query").Op(":=").Lit("UPDATE ").Op("+").Add(entityQual(p, p.Names.Entity+"Table")).
			Op("+").Lit(" SET ").Op("+").Qual(stringsPkg, "Join").Call(jen.Id("sets"), jen.Lit(", ")).
			Op("+").Lit(" WHERE ").Op("+").Add(column(p, id)).Op("+").Lit(" = ").Op("+").Id("r").Dot("bind").Call(jen.Len(jen.Id("values")))
		group.List(jen.Id("res"), jen.Err()).Op(":=").Id("r").Dot("db").Dot("ExecContext").Call(
			jen.Id("ctx"), jen.Id("query"), jen.Id("values").Op("..."),
		)
		group.Add(ifErr(jen.Err()))
		group.Return(jen.Id("r").Dot("affected").Call(jen.Id("res")))
	})
}

func genRepositoryDelete(f *jen.File, p *gen.Projection, id *gen.Field) {
	f.Commentf("Delete removes the %s with the given %s.", noun(p), id.Attribute)
	f.Func().Params(repoRecv(p)).Id("Delete").Params(ctxParam(), jen.Id("id").Add(baseType(id.Type))).Error().Block(
		jen.Id("query").Op(":=").Lit("DELETE FROM ").Op("+").Add(entityQual(p, p.Names.Entity+"Table")).
			Op("+").Lit(" WHERE ").Op("+").Add(column(p, id)).Op("+").Lit(" = ").Op("+").Id("r").Dot("bind").Call(jen.Lit(1)),
		jen.List(jen.Id("res"), jen.Err()).Op(":=").Id("r").Dot("db").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("query"), jen.Id("id")),
		ifErr(jen.Err()),
		jen.Return(jen.Id("r").Dot("affected").Call(jen.Id("res"))),
	)
}

// genRepositoryScan generates the row scanner. List and JSON fields are
// stored as JSON documents.
func genRepositoryScan(f *jen.File, p *gen.Projection) {
	scanner := jen.Interface(jen.Id("Scan").Params(jen.Op("...").Interface()).Error())
	f.Func().Params(repoRecv(p)).Id("scan").Params(jen.Id("s").Add(scanner)).Params(entityPtr(p), jen.Error()).BlockFunc(func(group *jen.Group) {
		group.Id("e").Op(":=").Op("&").Add(entityQual(p, p.Names.Entity)).Values()
		for _, fd := range p.Fields {
			if encoded(fd.Type) {
				group.Var().Id(raw(fd)).Index().Byte()
			}
		}
		group.If(
			jen.Err().Op(":=").Id("s").Dot("Scan").CallFunc(func(call *jen.Group) {
				for _, fd := range p.Fields {
					if encoded(fd.Type) {
						call.Op("&").Id(raw(fd))
						continue
					}
					call.Op("&").Id("e").Dot(fd.StructField())
				}
			}),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err()))
		for _, fd := range p.Fields {
			if !encoded(fd.Type) {
				continue
			}
			group.If(jen.Len(jen.Id(raw(fd))).Op(">").Lit(0)).Block(
				jen.If(
					jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id(raw(fd)), jen.Op("&").Id("e").Dot(fd.StructField())),
					jen.Err().Op("!=").Nil(),
				).Block(jen.Return(jen.Nil(), jen.Err())),
			)
		}
		group.Return(jen.Id("e"), jen.Nil())
	})
}

// genRepositoryValues generates the accessor of the non-key columns and
// values of an entity.
func genRepositoryValues(f *jen.File, p *gen.Projection) {
	fields := nonKeys(p)
	f.Func().Params(repoRecv(p)).Id("values").Params(jen.Id("e").Add(entityPtr(p))).
		Params(jen.Index().String(), jen.Index().Interface(), jen.Error()).BlockFunc(func(group *jen.Group) {
		group.Id("columns").Op(":=").Index().String().ValuesFunc(func(vals *jen.Group) {
			for _, fd := range fields {
				vals.Add(column(p, fd))
			}
		})
		group.Id("values").Op(":=").Make(jen.Index().Interface(), jen.Lit(0), jen.Len(jen.Id("columns")))
		for _, fd := range fields {
			if encoded(fd.Type) {
				group.List(jen.Id(raw(fd)), jen.Err()).Op(":=").Qual(jsonPkg, "Marshal").Call(jen.Id("e").Dot(fd.StructField()))
				group.Add(ifErr(jen.Nil(), jen.Nil(), jen.Err()))
				group.Id("values").Op("=").Append(jen.Id("values"), jen.Id(raw(fd)))
				continue
			}
			group.Id("values").Op("=").Append(jen.Id("values"), jen.Id("e").Dot(fd.StructField()))
		}
		group.Return(jen.Id("columns"), jen.Id("values"), jen.Nil())
	})
}

func raw(fd *gen.Field) string { return "raw" + fd.StructField() }
