package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/syssam/layergen/compiler/load"
	"github.com/syssam/layergen/compiler/naming"
	"github.com/syssam/layergen/schema/field"
)

// Introspector builds entity descriptors from a schema source.
type Introspector struct {
	source load.Source
	log    *slog.Logger
}

// NewIntrospector returns an introspector that opens the schema source of
// each configuration with load.Open.
func NewIntrospector() *Introspector {
	return &Introspector{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithSource makes the introspector describe entities from the given source
// instead of opening Config.SchemaLocator.
func (i *Introspector) WithSource(s load.Source) *Introspector {
	i.source = s
	return i
}

// WithLogger sets the logger.
func (i *Introspector) WithLogger(l *slog.Logger) *Introspector {
	if l != nil {
		i.log = l
	}
	return i
}

// Analyze locates the configured entity and returns its descriptor. Failing
// lookups return a ResolutionError and structural problems an
// IntrospectionError. The source is only read.
func (i *Introspector) Analyze(ctx context.Context, cfg Config) (*Descriptor, error) {
	src := i.source
	if src == nil {
		s, err := load.Open(ctx, cfg.SchemaLocator)
		if err != nil {
			return nil, &ResolutionError{Entity: cfg.Entity, Locator: cfg.SchemaLocator, Cause: err}
		}
		defer load.Close(s)
		src = s
	}
	s, err := src.Describe(ctx, cfg.Entity)
	switch {
	case errors.Is(err, load.ErrNotFound):
		return nil, &ResolutionError{Entity: cfg.Entity, Locator: cfg.SchemaLocator, Cause: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case err != nil:
		return nil, &IntrospectionError{Entity: cfg.Entity, Message: "read schema", Cause: err}
	}
	i.log.Debug("schema located", "entity", cfg.Entity, "pos", s.Pos,
		"columns", len(s.Columns), "relationships", len(s.Relationships))
	return NewDescriptor(s)
}

// NewDescriptor normalizes a loaded schema into a descriptor.
func NewDescriptor(s *load.Schema) (*Descriptor, error) {
	if s == nil || s.Name == "" {
		return nil, &IntrospectionError{Message: "schema without entity name"}
	}
	if len(s.Columns) == 0 {
		return nil, &IntrospectionError{Entity: s.Name, Message: "entity has no columns"}
	}
	d := &Descriptor{
		Name:    s.Name,
		Table:   s.Table,
		Comment: s.Comment,
		Names:   naming.Derive(s.Name),
	}
	if d.Table == "" {
		d.Table = d.Names.Plural
	}
	attrs := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		f, err := newField(s.Name, c)
		if err != nil {
			return nil, err
		}
		if attrs[f.Attribute] {
			return nil, &IntrospectionError{Entity: s.Name, Column: c.Name, Message: fmt.Sprintf("duplicate attribute %q", f.Attribute)}
		}
		attrs[f.Attribute] = true
		d.Fields = append(d.Fields, f)
		if f.Optional() {
			d.Optional = append(d.Optional, f)
		} else {
			d.Required = append(d.Required, f)
		}
	}
	for _, r := range s.Relationships {
		d.Relationships = append(d.Relationships, &Relationship{
			Name:       r.Name,
			Target:     r.Target,
			Collection: r.Collection,
			ForeignKey: foreignKey(r.Pairs),
		})
	}
	return d, nil
}

func newField(entity string, c *load.Column) (*Field, error) {
	desc := c.Descriptor()
	if desc.Empty() {
		return nil, &IntrospectionError{Entity: entity, Column: c.Name, Message: "column has no type information"}
	}
	t := field.ParseType(desc.Name)
	if desc.Variant != "" {
		t = field.Map(desc)
	}
	def, err := columnDefault(c, t)
	if err != nil {
		return nil, &IntrospectionError{Entity: entity, Column: c.Name, Message: err.Error()}
	}
	f := &Field{
		Name:       c.Name,
		Attribute:  c.Attribute,
		Type:       t,
		Nullable:   c.Nullable,
		PrimaryKey: c.PrimaryKey,
		ForeignKey: c.ForeignKey,
		Default:    def,
		Comment:    c.Comment,
	}
	if f.Attribute == "" {
		f.Attribute = c.Name
	}
	return f, nil
}

// columnDefault computes the three-way default policy of a column.
func columnDefault(c *load.Column, t field.Type) (field.Default, error) {
	set := 0
	for _, ok := range []bool{c.Default != nil, c.DefaultFactory != "", c.ServerDefault != ""} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return field.NoDefault(), errors.New("conflicting default, default_factory and server_default")
	}
	switch c.Default.(type) {
	case []any:
		return field.Factory("list", false), nil
	case map[string]any:
		return field.Factory("dict", false), nil
	}
	switch {
	case c.Default != nil:
		return field.Literal(literal(c.Default)), nil
	case c.DefaultFactory != "":
		return field.Factory(c.DefaultFactory, false), nil
	case c.ServerDefault != "":
		return field.ClassifyDefault(c.ServerDefault, t), nil
	default:
		return field.NoDefault(), nil
	}
}

func literal(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// foreignKey returns the local column of a relationship pairing when it
// consists of exactly one local/remote pair. Composite and malformed
// pairings yield an empty key.
func foreignKey(pairs [][]string) string {
	if len(pairs) != 1 || len(pairs[0]) != 2 {
		return ""
	}
	return pairs[0][0]
}
