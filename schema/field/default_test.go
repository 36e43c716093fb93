package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDefault(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		typ      Type
		expected Default
	}{
		{"empty", "", TypeString, NoDefault()},
		{"null", "NULL", TypeString, NoDefault()},
		{"quoted string", "'active'", TypeString, Literal("active")},
		{"escaped quote", "'it''s'", TypeString, Literal("it's")},
		{"postgres cast", "'draft'::character varying", TypeString, Literal("draft")},
		{"integer", "42", TypeInt, Literal("42")},
		{"float", "1.5", TypeFloat, Literal("1.5")},
		{"bool keyword", "TRUE", TypeBool, Literal("true")},
		{"sqlite bool", "0", TypeBool, Literal("false")},
		{"quoted bool", "'t'", TypeBool, Literal("true")},
		{"uuid literal", "'6f1c4e3a-8a51-4c8b-9b7e-1e2d3c4b5a69'", TypeIdentifier, Literal("6f1c4e3a-8a51-4c8b-9b7e-1e2d3c4b5a69")},
		{"uuid function", "gen_random_uuid()", TypeIdentifier, Factory("gen_random_uuid()", true)},
		{"bad uuid literal", "'abc'", TypeIdentifier, Factory("'abc'", true)},
		{"now", "now()", TypeDateTime, Factory("now()", true)},
		{"current timestamp", "CURRENT_TIMESTAMP", TypeDateTime, Factory("CURRENT_TIMESTAMP", true)},
		{"sequence", "nextval('zones_id_seq'::regclass)", TypeInt, Factory("nextval('zones_id_seq'::regclass)", true)},
		{"json object", "'{}'::jsonb", TypeJSON, Literal("{}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDefault(tt.raw, tt.typ))
		})
	}
}

func TestDefaultKind(t *testing.T) {
	assert.True(t, NoDefault().IsZero())
	assert.False(t, Literal("1").IsZero())
	assert.Equal(t, "literal", DefaultLiteral.String())
	assert.Equal(t, "factory", DefaultFactory.String())
	assert.Equal(t, "none", DefaultNone.String())
}
