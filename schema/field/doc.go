// Package field classifies schema columns into target-language-neutral
// semantic types and default-value policies.
//
// Storage types are described by a TypeDescriptor: the declared type name
// and an optional dialect variant tag. Map resolves the variant first and
// then the normalized name, falling back to TypeUnknown:
//
//	field.Map(field.TypeDescriptor{Name: "varchar(64)"})                 // TypeString
//	field.Map(field.TypeDescriptor{Name: "char(36)", Variant: "uuid"})   // TypeIdentifier
//	field.Map(field.TypeDescriptor{Name: "text[]"})                      // TypeList
//	field.Map(field.TypeDescriptor{Name: "geometry"})                    // TypeUnknown
//
// # Defaults
//
// A Default is a tagged variant: no default (the value is required), a
// literal, or a factory. ClassifyDefault derives it from a raw storage
// default expression:
//
//	field.ClassifyDefault("'active'", field.TypeString)          // literal "active"
//	field.ClassifyDefault("now()", field.TypeDateTime)           // server factory
//	field.ClassifyDefault("gen_random_uuid()", field.TypeIdentifier)
package field
