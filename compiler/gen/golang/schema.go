package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
)

// genSchema generates the API payload file (schemas/{snake}_schema.go):
// the create and partial-update requests and the response.
func genSchema(p *gen.Projection) *jen.File {
	f := newFile(p)
	n := p.Names
	fields := nonKeys(p)

	f.Commentf("%s is the request payload creating a %s.", n.CreateInput, noun(p))
	f.Type().Id(n.CreateInput).StructFunc(func(group *jen.Group) {
		for _, fd := range fields {
			group.Id(fd.StructField()).Add(goType(fd)).Tag(jsonTag(fd.Attribute, fd.Optional()))
		}
	})

	f.Commentf("%s is the request payload updating a %s. Nil fields are left unchanged.", n.UpdateInput, noun(p))
	f.Type().Id(n.UpdateInput).StructFunc(func(group *jen.Group) {
		for _, fd := range fields {
			group.Id(fd.StructField()).Add(updateType(fd)).Tag(jsonTag(fd.Attribute, true))
		}
	})

	f.Commentf("%s is the API representation of a %s.", n.Response, noun(p))
	f.Type().Id(n.Response).StructFunc(func(group *jen.Group) {
		for _, fd := range p.Fields {
			group.Id(fd.StructField()).Add(goType(fd)).Tag(jsonTag(fd.Attribute, fd.Optional()))
		}
	})

	f.Commentf("New%s returns the response of e.", n.Response)
	f.Func().Id("New" + n.Response).Params(jen.Id("e").Add(entityPtr(p))).Op("*").Id(n.Response).Block(
		jen.Return(jen.Op("&").Id(n.Response).Values(jen.DictFunc(func(d jen.Dict) {
			for _, fd := range p.Fields {
				d[jen.Id(fd.StructField())] = jen.Id("e").Dot(fd.StructField())
			}
		}))),
	)
	return f
}

func jsonTag(name string, omitempty bool) map[string]string {
	if omitempty {
		name += ",omitempty"
	}
	return map[string]string{"json": name}
}
