package field

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// A DefaultKind tags the default-value policy of a field.
type DefaultKind uint8

// Default-value policies.
const (
	// DefaultNone means the value is required and has no default.
	DefaultNone DefaultKind = iota
	// DefaultLiteral means the field defaults to a literal value.
	DefaultLiteral
	// DefaultFactory means the value is computed: by the store (server
	// default), by a callable, or by a factory for mutable values that must
	// not be shared across instances.
	DefaultFactory
)

// String returns the policy name.
func (k DefaultKind) String() string {
	switch k {
	case DefaultLiteral:
		return "literal"
	case DefaultFactory:
		return "factory"
	default:
		return "none"
	}
}

// Default is the default-value policy of a field, as a tagged variant.
// Value holds the literal text for DefaultLiteral. Expr holds the factory
// description for DefaultFactory, and Server reports if the store computes
// the value.
type Default struct {
	Kind   DefaultKind `json:"kind"`
	Value  string      `json:"value,omitempty"`
	Expr   string      `json:"expr,omitempty"`
	Server bool        `json:"server,omitempty"`
}

// NoDefault returns the policy of a required field.
func NoDefault() Default { return Default{} }

// Literal returns a literal default policy.
func Literal(v string) Default { return Default{Kind: DefaultLiteral, Value: v} }

// Factory returns a computed default policy.
func Factory(expr string, server bool) Default {
	return Default{Kind: DefaultFactory, Expr: expr, Server: server}
}

// IsZero reports if the policy is "required, no default".
func (d Default) IsZero() bool { return d.Kind == DefaultNone }

// ClassifyDefault classifies a raw storage default expression of a column
// of type t. Quoted strings, numbers, booleans and UUID literals are literals.
// Everything else (function calls, keywords like CURRENT_TIMESTAMP, casts)
// is treated as a server-side factory. An empty expression means no default.
func ClassifyDefault(raw string, t Type) Default {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return NoDefault()
	}
	// Postgres renders typed literals as 'value'::type.
	expr := raw
	if i := strings.Index(expr, "::"); i > 0 {
		expr = expr[:i]
	}
	if unquoted, ok := unquote(expr); ok {
		switch t {
		case TypeIdentifier:
			if _, err := uuid.Parse(unquoted); err != nil {
				return Factory(raw, true)
			}
		case TypeBool:
			if b, ok := parseBool(unquoted); ok {
				return Literal(strconv.FormatBool(b))
			}
		}
		return Literal(unquoted)
	}
	switch {
	case t == TypeBool:
		if b, ok := parseBool(expr); ok {
			return Literal(strconv.FormatBool(b))
		}
	case t.Numeric() || t == TypeString || t == TypeUnknown:
		if _, err := strconv.ParseFloat(expr, 64); err == nil {
			return Literal(expr)
		}
	case t == TypeIdentifier:
		if _, err := uuid.Parse(expr); err == nil {
			return Literal(expr)
		}
	}
	return Factory(raw, true)
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	if q := s[0]; (q == '\'' || q == '"') && s[len(s)-1] == q {
		return strings.ReplaceAll(s[1:len(s)-1], string([]byte{q, q}), string(q)), true
	}
	return "", false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes", "y", "on":
		return true, true
	case "false", "f", "0", "no", "n", "off":
		return false, true
	}
	return false, false
}
