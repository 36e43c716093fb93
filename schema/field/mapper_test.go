package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	tests := []struct {
		desc     TypeDescriptor
		expected Type
	}{
		{TypeDescriptor{Name: "Integer"}, TypeInt},
		{TypeDescriptor{Name: "BIGINT"}, TypeInt},
		{TypeDescriptor{Name: "int unsigned"}, TypeInt},
		{TypeDescriptor{Name: "numeric(10,2)"}, TypeFloat},
		{TypeDescriptor{Name: "double  precision"}, TypeFloat},
		{TypeDescriptor{Name: "varchar(255)"}, TypeString},
		{TypeDescriptor{Name: "character varying(64)"}, TypeString},
		{TypeDescriptor{Name: "String"}, TypeString},
		{TypeDescriptor{Name: "Boolean"}, TypeBool},
		{TypeDescriptor{Name: "DateTime"}, TypeDateTime},
		{TypeDescriptor{Name: "timestamp with time zone"}, TypeDateTime},
		{TypeDescriptor{Name: "date"}, TypeDate},
		{TypeDescriptor{Name: "time(6)"}, TypeTime},
		{TypeDescriptor{Name: "Interval"}, TypeDuration},
		{TypeDescriptor{Name: "uuid"}, TypeIdentifier},
		{TypeDescriptor{Name: "text[]"}, TypeList},
		{TypeDescriptor{Name: "integer[3]"}, TypeList},
		{TypeDescriptor{Name: "ARRAY"}, TypeList},
		{TypeDescriptor{Name: "jsonb"}, TypeJSON},
		{TypeDescriptor{Name: "LargeBinary"}, TypeBinary},
		{TypeDescriptor{Name: "bytea"}, TypeBinary},
	}
	for _, tt := range tests {
		t.Run(tt.desc.Name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Map(tt.desc))
		})
	}
}

func TestMap_VariantPrecedence(t *testing.T) {
	assert.Equal(t, TypeIdentifier, Map(TypeDescriptor{Name: "char(36)", Variant: "uuid"}))
	assert.Equal(t, TypeIdentifier, Map(TypeDescriptor{Name: "binary(16)", Variant: "UUID"}))
	assert.Equal(t, TypeJSON, Map(TypeDescriptor{Name: "text", Variant: "json"}))
	assert.Equal(t, TypeJSON, Map(TypeDescriptor{Name: "varchar", Variant: "jsonb"}))
	assert.Equal(t, TypeList, Map(TypeDescriptor{Name: "integer", Variant: "array"}))
	// Unknown variants do not shadow the name lookup.
	assert.Equal(t, TypeString, Map(TypeDescriptor{Name: "text", Variant: "citext-ext"}))
}

func TestMap_Total(t *testing.T) {
	inputs := []TypeDescriptor{
		{},
		{Name: "geometry(Point,4326)"},
		{Name: "("},
		{Name: ")("},
		{Name: "["},
		{Name: "[]"},
		{Name: "tsvector"},
		{Variant: "hstore"},
		{Name: "\x00\xff"},
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := Map(in)
			assert.True(t, got.Valid())
		})
	}
	assert.Equal(t, TypeUnknown, Map(TypeDescriptor{Name: "tsvector"}))
	assert.Equal(t, TypeUnknown, Map(TypeDescriptor{}))
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeIdentifier, ParseType("identifier"))
	assert.Equal(t, TypeJSON, ParseType("JSON"))
	assert.Equal(t, TypeString, ParseType("varchar(12)"))
	assert.Equal(t, TypeUnknown, ParseType("point"))

	var typ Type
	assert.NoError(t, typ.UnmarshalText([]byte("duration")))
	assert.Equal(t, TypeDuration, typ)
	text, err := TypeBinary.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "binary", string(text))
}

func TestType_Predicates(t *testing.T) {
	assert.True(t, TypeInt.Numeric())
	assert.False(t, TypeString.Numeric())
	assert.True(t, TypeDate.Temporal())
	assert.True(t, TypeIdentifier.Scalar())
	assert.False(t, TypeJSON.Scalar())
	assert.Equal(t, "unknown", Type(200).String())
	assert.False(t, Type(200).Valid())
}
