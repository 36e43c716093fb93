// Package load provides the schema sources the generator introspects.
//
// A Source describes one named entity as a Schema: its ordered columns and
// relationships, in the raw form the underlying schema system exposes them.
// Normalization into generator descriptors happens in compiler/gen.
package load

import (
	"fmt"

	"github.com/syssam/layergen/schema/field"
)

// Schema represents one entity as described by a schema source.
type Schema struct {
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	Table         string          `json:"table,omitempty" yaml:"table,omitempty"`
	Comment       string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Columns       []*Column       `json:"columns,omitempty" yaml:"columns,omitempty"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	// Pos holds the location the schema was loaded from (file path or DSN
	// table reference). Used in error messages only.
	Pos string `json:"-" yaml:"-"`
}

// Column represents a column of a loaded schema.
type Column struct {
	// Name is the storage name of the column.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Attribute is the field identifier on the entity, when it differs
	// from the storage name.
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	// Type is the declared storage type and Variant its dialect tag.
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	// Nullable reports if NULL is a legal value.
	Nullable   bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	ForeignKey string `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
	// Default holds a literal default value. DefaultFactory names a callable
	// or mutable-value factory, and ServerDefault a storage expression.
	// At most one of them is set.
	Default        any    `json:"default,omitempty" yaml:"default,omitempty"`
	DefaultFactory string `json:"default_factory,omitempty" yaml:"default_factory,omitempty"`
	ServerDefault  string `json:"server_default,omitempty" yaml:"server_default,omitempty"`
	Comment        string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Descriptor returns the type descriptor of the column.
func (c *Column) Descriptor() field.TypeDescriptor {
	return field.TypeDescriptor{Name: c.Type, Variant: c.Variant}
}

// Relationship represents an association declared on a loaded schema.
type Relationship struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	// Collection reports if the association is many-valued.
	Collection bool `json:"collection,omitempty" yaml:"collection,omitempty"`
	// Pairs holds the local/remote column pairs implementing the
	// association on the owning side, e.g. [["world_id", "id"]].
	Pairs [][]string `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// validate checks the parts of a loaded schema every source must provide.
func (s *Schema) validate() error {
	if s.Name == "" {
		return fmt.Errorf("load: schema at %s: missing entity name", s.Pos)
	}
	for i, c := range s.Columns {
		if c == nil || c.Name == "" {
			return fmt.Errorf("load: schema %q: column %d: missing name", s.Name, i)
		}
	}
	for i, r := range s.Relationships {
		if r == nil || r.Name == "" {
			return fmt.Errorf("load: schema %q: relationship %d: missing name", s.Name, i)
		}
	}
	return nil
}
