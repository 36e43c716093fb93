package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
	"github.com/syssam/layergen/compiler/naming"
)

// genEntity generates the entity file (entities/{snake}_entity.go).
func genEntity(p *gen.Projection) *jen.File {
	f := newFile(p)
	genEntityConsts(f, p)
	genEntityStruct(f, p)
	genEntityOptions(f, p)
	genEntityConstructor(f, p)
	return f
}

// genEntityConsts generates the table, column and default constants.
func genEntityConsts(f *jen.File, p *gen.Projection) {
	e := p.Names.Entity
	f.Commentf("%sTable is the storage table of %s entities.", e, e)
	f.Const().Id(e + "Table").Op("=").Lit(p.Table)

	f.Commentf("Columns of the %s table.", p.Table)
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, fd := range p.Fields {
			group.Id(columnConst(p, fd)).Op("=").Lit(fd.Name)
		}
	})

	f.Commentf("%sColumns holds all columns of the %s table, in declaration order.", e, p.Table)
	f.Var().Id(e + "Columns").Op("=").Index().String().ValuesFunc(func(group *jen.Group) {
		for _, fd := range p.Fields {
			group.Id(columnConst(p, fd))
		}
	})

	var defaults []jen.Code
	for _, fd := range p.Fields {
		if !hasConst(fd) {
			continue
		}
		v, _ := literal(fd.Type, fd.Default.Value)
		defaults = append(defaults, jen.Id(defaultConst(p, fd)).Add(baseType(fd.Type)).Op("=").Add(v))
	}
	if len(defaults) > 0 {
		f.Commentf("Default values of %s fields.", e)
		f.Const().Defs(defaults...)
	}
}

// genEntityStruct generates the entity struct.
func genEntityStruct(f *jen.File, p *gen.Projection) {
	e := p.Names.Entity
	if p.Comment != "" {
		f.Comment(p.Comment)
	} else {
		f.Commentf("%s is the model entity of the %s table.", e, p.Table)
	}
	rels := relationFields(p)
	f.Type().Id(e).StructFunc(func(group *jen.Group) {
		for _, fd := range p.Fields {
			group.Id(fd.StructField()).Add(goType(fd)).Tag(structTags(fd))
		}
		if len(rels) > 0 {
			group.Line()
			group.Comment("Relationships, loaded on demand.")
		}
		for _, r := range rels {
			typ := jen.Op("*").Id(r.Target)
			if r.Collection {
				typ = jen.Index().Op("*").Id(r.Target)
			}
			group.Id(r.StructField()).Add(typ).Tag(map[string]string{"json": r.Name + ",omitempty", "db": "-"})
		}
	})
}

// relationFields returns the relationships rendered as struct fields:
// those with a valid target whose name does not collide with a column.
func relationFields(p *gen.Projection) []*gen.Relationship {
	taken := make(map[string]bool, len(p.Fields))
	for _, fd := range p.Fields {
		taken[fd.StructField()] = true
	}
	var rels []*gen.Relationship
	for _, r := range p.Relationships {
		if !naming.ValidEntity(r.Target) || taken[r.StructField()] {
			continue
		}
		taken[r.StructField()] = true
		rels = append(rels, r)
	}
	return rels
}

func structTags(fd *gen.Field) map[string]string {
	json := fd.Attribute
	if fd.Optional() {
		json += ",omitempty"
	}
	return map[string]string{"json": json, "db": fd.Name}
}

// genEntityOptions generates the option type and one option per optional
// field.
func genEntityOptions(f *jen.File, p *gen.Projection) {
	n := p.Names
	f.Commentf("%s sets an optional field of a %s.", n.Option, n.Entity)
	f.Type().Id(n.Option).Func().Params(jen.Op("*").Id(n.Entity))
	for _, fd := range p.Optional {
		name := "With" + n.Entity + fd.StructField()
		f.Commentf("%s sets the %s field.", name, fd.Attribute)
		value := jen.Id("v")
		if pointer(fd) {
			value = jen.Op("&").Id("v")
		}
		f.Func().Id(name).Params(jen.Id("v").Add(baseType(fd.Type))).Id(n.Option).Block(
			jen.Return(jen.Func().Params(jen.Id("e").Op("*").Id(n.Entity)).Block(
				jen.Id("e").Dot(fd.StructField()).Op("=").Add(value),
			)),
		)
	}
}

// genEntityConstructor generates the constructor taking the required fields
// in declaration order and options for the optional ones.
func genEntityConstructor(f *jen.File, p *gen.Projection) {
	n := p.Names
	f.Commentf("%s returns a %s with its required fields set. Optional fields", n.Constructor, n.Entity)
	f.Comment("take their defaults unless set with options.")
	f.Func().Id(n.Constructor).ParamsFunc(func(group *jen.Group) {
		for _, fd := range p.Required {
			group.Id(fd.Param()).Add(baseType(fd.Type))
		}
		group.Id("opts").Op("...").Id(n.Option)
	}).Op("*").Id(n.Entity).BlockFunc(func(group *jen.Group) {
		group.Id("e").Op(":=").Op("&").Id(n.Entity).Values(jen.DictFunc(func(d jen.Dict) {
			for _, fd := range p.Required {
				d[jen.Id(fd.StructField())] = jen.Id(fd.Param())
			}
		}))
		for _, fd := range p.Optional {
			v, ok := defaultValue(p, fd)
			if !ok {
				continue
			}
			if pointer(fd) {
				group.Block(
					jen.Id("v").Op(":=").Add(v),
					jen.Id("e").Dot(fd.StructField()).Op("=").Op("&").Id("v"),
				)
				continue
			}
			group.Id("e").Dot(fd.StructField()).Op("=").Add(v)
		}
		group.For(jen.List(jen.Id("_"), jen.Id("opt")).Op(":=").Range().Id("opts")).Block(
			jen.Id("opt").Call(jen.Id("e")),
		)
		group.Return(jen.Id("e"))
	})
}
