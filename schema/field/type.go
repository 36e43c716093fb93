package field

import "strings"

// A Type is the target-language-neutral classification of a column.
type Type uint8

// List of semantic types.
const (
	TypeUnknown Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeBool
	TypeDateTime
	TypeDate
	TypeTime
	TypeDuration
	TypeIdentifier
	TypeList
	TypeJSON
	TypeBinary
	endTypes
)

var typeNames = [...]string{
	TypeUnknown:    "unknown",
	TypeInt:        "int",
	TypeFloat:      "float",
	TypeString:     "string",
	TypeBool:       "bool",
	TypeDateTime:   "datetime",
	TypeDate:       "date",
	TypeTime:       "time",
	TypeDuration:   "duration",
	TypeIdentifier: "identifier",
	TypeList:       "list",
	TypeJSON:       "json",
	TypeBinary:     "binary",
}

// String returns the semantic name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeUnknown]
}

// Valid reports if the given type is a known semantic type.
func (t Type) Valid() bool { return t < endTypes }

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool { return t == TypeInt || t == TypeFloat }

// Temporal reports if the given type holds a point in time or a span.
func (t Type) Temporal() bool {
	return t == TypeDateTime || t == TypeDate || t == TypeTime || t == TypeDuration
}

// Scalar reports if values of the type can be expressed as a single
// query-string parameter.
func (t Type) Scalar() bool {
	switch t {
	case TypeList, TypeJSON, TypeBinary, TypeUnknown:
		return false
	default:
		return true
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized
// names are mapped through Map and never fail.
func (t *Type) UnmarshalText(text []byte) error {
	*t = ParseType(string(text))
	return nil
}

// ParseType parses a semantic type name (e.g. "identifier") and falls back
// to Map for storage type names (e.g. "varchar(64)").
func ParseType(s string) Type {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name {
			return Type(i)
		}
	}
	return Map(TypeDescriptor{Name: s})
}
