package golang

import (
	"strconv"
	"time"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/layergen/compiler/gen"
	"github.com/syssam/layergen/schema/field"
)

// baseType returns the Go type of a semantic type. Unknown types map to the
// empty interface.
func baseType(t field.Type) *jen.Statement {
	switch t {
	case field.TypeInt:
		return jen.Int64()
	case field.TypeFloat:
		return jen.Float64()
	case field.TypeString, field.TypeTime:
		return jen.String()
	case field.TypeBool:
		return jen.Bool()
	case field.TypeDateTime, field.TypeDate:
		return jen.Qual(timePkg, "Time")
	case field.TypeDuration:
		return jen.Qual(timePkg, "Duration")
	case field.TypeIdentifier:
		return jen.Qual(uuidPkg, "UUID")
	case field.TypeList:
		return jen.Index().Interface()
	case field.TypeJSON:
		return jen.Map(jen.String()).Interface()
	case field.TypeBinary:
		return jen.Index().Byte()
	default:
		return jen.Interface()
	}
}

// nillable reports if the zero value of the Go type is nil.
func nillable(t field.Type) bool {
	switch t {
	case field.TypeList, field.TypeJSON, field.TypeBinary, field.TypeUnknown:
		return true
	default:
		return false
	}
}

// encoded reports if values of the type are stored as JSON documents.
func encoded(t field.Type) bool {
	return t == field.TypeList || t == field.TypeJSON
}

// pointer reports if the Go type of the field is a pointer.
func pointer(f *gen.Field) bool {
	return f.Optional() && !nillable(f.Type)
}

// goType returns the Go type of a field: optional fields are pointers,
// unless their type is already nillable.
func goType(f *gen.Field) *jen.Statement {
	if pointer(f) {
		return jen.Op("*").Add(baseType(f.Type))
	}
	return baseType(f.Type)
}

// updateType returns the Go type of a field in partial-update payloads,
// where nil means unchanged.
func updateType(f *gen.Field) *jen.Statement {
	if nillable(f.Type) {
		return baseType(f.Type)
	}
	return jen.Op("*").Add(baseType(f.Type))
}

// constant reports if literal defaults of the type can be Go constants.
func constant(t field.Type) bool {
	switch t {
	case field.TypeInt, field.TypeFloat, field.TypeString, field.TypeTime, field.TypeBool:
		return true
	default:
		return false
	}
}

// literal returns the Go expression of a literal default. Literals that do
// not parse as the field type are dropped.
func literal(t field.Type, v string) (jen.Code, bool) {
	switch t {
	case field.TypeInt:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return jen.Op(strconv.FormatInt(n, 10)), true
		}
	case field.TypeFloat:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return jen.Op(strconv.FormatFloat(n, 'g', -1, 64)), true
		}
	case field.TypeBool:
		if b, err := strconv.ParseBool(v); err == nil {
			return jen.Lit(b), true
		}
	case field.TypeString, field.TypeTime:
		return jen.Lit(v), true
	case field.TypeIdentifier:
		return jen.Qual(uuidPkg, "MustParse").Call(jen.Lit(v)), true
	case field.TypeDuration:
		if d, err := time.ParseDuration(v); err == nil {
			return jen.Qual(timePkg, "Duration").Call(jen.Lit(int64(d))), true
		}
	}
	return nil, false
}

// factory returns the Go expression computing a fresh default value of the
// type, for callable and mutable defaults.
func factory(t field.Type) (jen.Code, bool) {
	switch t {
	case field.TypeIdentifier:
		return jen.Qual(uuidPkg, "New").Call(), true
	case field.TypeDateTime, field.TypeDate:
		return jen.Qual(timePkg, "Now").Call(), true
	case field.TypeList:
		return jen.Index().Interface().Values(), true
	case field.TypeJSON:
		return jen.Map(jen.String()).Interface().Values(), true
	case field.TypeBinary:
		return jen.Index().Byte().Values(), true
	default:
		return nil, false
	}
}

// hasConst reports if a constant is generated for the field default.
func hasConst(f *gen.Field) bool {
	if f.Default.Kind != field.DefaultLiteral || !constant(f.Type) {
		return false
	}
	_, ok := literal(f.Type, f.Default.Value)
	return ok
}

// defaultValue returns the Go expression of the field default. Server-side
// defaults are left to the database.
func defaultValue(p *gen.Projection, f *gen.Field) (jen.Code, bool) {
	switch f.Default.Kind {
	case field.DefaultLiteral:
		if hasConst(f) {
			return jen.Id(defaultConst(p, f)), true
		}
		return literal(f.Type, f.Default.Value)
	case field.DefaultFactory:
		if f.Default.Server {
			return nil, false
		}
		return factory(f.Type)
	default:
		return nil, false
	}
}

// parse returns the Go expression parsing the string src into the field
// type, returning (value, error). It returns false for string types that
// need no parsing and for types that cannot be parsed from text.
func parse(t field.Type, src jen.Code) (jen.Code, bool) {
	switch t {
	case field.TypeInt:
		return jen.Qual(strconvPkg, "ParseInt").Call(src, jen.Lit(10), jen.Lit(64)), true
	case field.TypeFloat:
		return jen.Qual(strconvPkg, "ParseFloat").Call(src, jen.Lit(64)), true
	case field.TypeBool:
		return jen.Qual(strconvPkg, "ParseBool").Call(src), true
	case field.TypeDateTime:
		return jen.Qual(timePkg, "Parse").Call(jen.Qual(timePkg, "RFC3339"), src), true
	case field.TypeDate:
		return jen.Qual(timePkg, "Parse").Call(jen.Qual(timePkg, "DateOnly"), src), true
	case field.TypeDuration:
		return jen.Qual(timePkg, "ParseDuration").Call(src), true
	case field.TypeIdentifier:
		return jen.Qual(uuidPkg, "Parse").Call(src), true
	default:
		return nil, false
	}
}
