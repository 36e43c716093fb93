package field

import "strings"

// Dialect variant tags. They take precedence over the declared type name,
// as some dialects declare identifiers and documents with generic names
// (e.g. a CHAR(36) column tagged as uuid).
const (
	VariantUUID  = "uuid"
	VariantJSON  = "json"
	VariantArray = "array"
)

// TypeDescriptor describes a column type as declared in a schema system:
// the storage type name and an optional dialect-specific variant tag.
type TypeDescriptor struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Empty reports if the descriptor carries no type information at all.
func (d TypeDescriptor) Empty() bool {
	return strings.TrimSpace(d.Name) == "" && strings.TrimSpace(d.Variant) == ""
}

// variants are checked before the name table.
var variants = map[string]Type{
	VariantUUID:  TypeIdentifier,
	VariantJSON:  TypeJSON,
	"jsonb":      TypeJSON,
	VariantArray: TypeList,
}

// names maps normalized storage type names to semantic types.
var names = map[string]Type{
	// Integers.
	"int":          TypeInt,
	"integer":      TypeInt,
	"int2":         TypeInt,
	"int4":         TypeInt,
	"int8":         TypeInt,
	"int16":        TypeInt,
	"int32":        TypeInt,
	"int64":        TypeInt,
	"tinyint":      TypeInt,
	"smallint":     TypeInt,
	"mediumint":    TypeInt,
	"bigint":       TypeInt,
	"serial":       TypeInt,
	"smallserial":  TypeInt,
	"bigserial":    TypeInt,
	"biginteger":   TypeInt,
	"smallinteger": TypeInt,
	// Floating point and decimals.
	"float":            TypeFloat,
	"float4":           TypeFloat,
	"float8":           TypeFloat,
	"real":             TypeFloat,
	"double":           TypeFloat,
	"double precision": TypeFloat,
	"numeric":          TypeFloat,
	"decimal":          TypeFloat,
	"money":            TypeFloat,
	// Strings.
	"string":            TypeString,
	"str":               TypeString,
	"text":              TypeString,
	"unicode":           TypeString,
	"unicodetext":       TypeString,
	"char":              TypeString,
	"character":         TypeString,
	"varchar":           TypeString,
	"character varying": TypeString,
	"nvarchar":          TypeString,
	"nchar":             TypeString,
	"tinytext":          TypeString,
	"mediumtext":        TypeString,
	"longtext":          TypeString,
	"clob":              TypeString,
	"citext":            TypeString,
	"enum":              TypeString,
	// Booleans.
	"bool":    TypeBool,
	"boolean": TypeBool,
	"bit":     TypeBool,
	// Temporal types.
	"datetime":                    TypeDateTime,
	"datetime2":                   TypeDateTime,
	"timestamp":                   TypeDateTime,
	"timestamptz":                 TypeDateTime,
	"timestamp with time zone":    TypeDateTime,
	"timestamp without time zone": TypeDateTime,
	"date":                        TypeDate,
	"time":                        TypeTime,
	"timetz":                      TypeTime,
	"time with time zone":         TypeTime,
	"time without time zone":      TypeTime,
	"interval":                    TypeDuration,
	"duration":                    TypeDuration,
	// Identifiers.
	"uuid":             TypeIdentifier,
	"uniqueidentifier": TypeIdentifier,
	"guid":             TypeIdentifier,
	// Collections and documents.
	"array": TypeList,
	"list":  TypeList,
	"json":  TypeJSON,
	"jsonb": TypeJSON,
	// Binary.
	"binary":      TypeBinary,
	"varbinary":   TypeBinary,
	"blob":        TypeBinary,
	"tinyblob":    TypeBinary,
	"mediumblob":  TypeBinary,
	"longblob":    TypeBinary,
	"bytea":       TypeBinary,
	"bytes":       TypeBinary,
	"largebinary": TypeBinary,
}

// Map maps a type descriptor to its semantic type. Dialect variants are
// resolved first, then the normalized name is looked up. Unrecognized
// types map to TypeUnknown; Map never fails.
func Map(d TypeDescriptor) Type {
	if t, ok := variants[strings.ToLower(strings.TrimSpace(d.Variant))]; ok {
		return t
	}
	name, list := normalize(d.Name)
	if list {
		return TypeList
	}
	if t, ok := names[name]; ok {
		return t
	}
	return TypeUnknown
}

// normalize lower-cases a storage type name and strips the size/precision
// arguments and modifiers that do not change its classification. It reports
// separately if the name denotes an array (e.g. "text[]").
func normalize(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "[]") {
		return strings.TrimSuffix(s, "[]"), true
	}
	// Array notation with explicit bounds, e.g. "integer[3]".
	if i := strings.IndexByte(s, '['); i > 0 && strings.HasSuffix(s, "]") {
		return s[:i], true
	}
	if i := strings.IndexByte(s, '('); i >= 0 {
		if j := strings.LastIndexByte(s, ')'); j > i {
			s = s[:i] + s[j+1:]
		} else {
			s = s[:i]
		}
	}
	s = strings.TrimSuffix(s, " unsigned")
	return strings.Join(strings.Fields(s), " "), false
}
