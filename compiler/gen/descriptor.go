package gen

import (
	"github.com/syssam/layergen/compiler/naming"
	"github.com/syssam/layergen/schema/field"
)

// Descriptor is the normalized description of one entity that drives the
// generation of all its artifacts. It is built once per run by the
// Introspector and never mutated afterward.
type Descriptor struct {
	// Name is the canonical entity name, as declared in the schema.
	Name string `json:"name"`
	// Table is the storage table name.
	Table   string `json:"table"`
	Comment string `json:"comment,omitempty"`
	// Fields are in declaration order.
	Fields        []*Field        `json:"fields"`
	Relationships []*Relationship `json:"relationships,omitempty"`
	// Required holds the fields that are neither nullable nor primary keys,
	// and Optional all other fields. Both keep declaration order.
	Required []*Field `json:"required"`
	Optional []*Field `json:"optional"`
	// Names holds the naming variants shared by all artifacts.
	Names naming.Names `json:"names"`
}

// PrimaryKeys returns the primary-key fields.
func (d *Descriptor) PrimaryKeys() []*Field {
	var pks []*Field
	for _, f := range d.Fields {
		if f.PrimaryKey {
			pks = append(pks, f)
		}
	}
	return pks
}

// ID returns the primary-key field when the entity has exactly one, and nil
// otherwise. Artifacts only generate identifier-based operations for
// entities with an ID.
func (d *Descriptor) ID() *Field {
	if pks := d.PrimaryKeys(); len(pks) == 1 {
		return pks[0]
	}
	return nil
}

// SearchFields returns all fields that are not primary keys.
func (d *Descriptor) SearchFields() []*Field {
	var fs []*Field
	for _, f := range d.Fields {
		if !f.PrimaryKey {
			fs = append(fs, f)
		}
	}
	return fs
}

// Field returns the field with the given attribute name, or nil.
func (d *Descriptor) Field(attr string) *Field {
	for _, f := range d.Fields {
		if f.Attribute == attr {
			return f
		}
	}
	return nil
}

// Field is the descriptor of one entity column.
type Field struct {
	// Name is the storage column name and Attribute the field identifier.
	// They are equal unless the storage aliases the column.
	Name      string     `json:"name"`
	Attribute string     `json:"attribute"`
	Type      field.Type `json:"type"`
	Nullable  bool       `json:"nullable,omitempty"`
	// PrimaryKey fields are always optional.
	PrimaryKey bool `json:"primary_key,omitempty"`
	// ForeignKey is the referenced table, or empty.
	ForeignKey string        `json:"foreign_key,omitempty"`
	Default    field.Default `json:"default"`
	Comment    string        `json:"comment,omitempty"`
}

// Optional reports if the field may be omitted on construction: it is
// nullable or a primary key.
func (f *Field) Optional() bool { return f.Nullable || f.PrimaryKey }

// TypeAnnotation returns the semantic type of the field, wrapped in
// "optional(...)" for optional fields.
func (f *Field) TypeAnnotation() string {
	if f.Optional() {
		return "optional(" + f.Type.String() + ")"
	}
	return f.Type.String()
}

// StructField returns the Go struct field name of the field.
func (f *Field) StructField() string { return naming.Pascal(f.Attribute) }

// Param returns the Go parameter name of the field.
func (f *Field) Param() string { return naming.Param(f.Attribute) }

// Relationship is the descriptor of one entity association.
type Relationship struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	// Collection reports a many-valued association.
	Collection bool `json:"collection,omitempty"`
	// ForeignKey is the local column of the first column pair, or empty
	// when the pairing is composite or cannot be resolved.
	ForeignKey string `json:"foreign_key,omitempty"`
}

// StructField returns the Go struct field name of the association.
func (r *Relationship) StructField() string { return naming.Pascal(r.Name) }
