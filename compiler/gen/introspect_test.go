package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/layergen/compiler/load"
	"github.com/syssam/layergen/schema/field"
)

func zoneSchema() *load.Schema {
	return &load.Schema{
		Name:    "Zone",
		Table:   "zones",
		Comment: "A playable area of a world.",
		Columns: []*load.Column{
			{Name: "id", Type: "uuid", PrimaryKey: true, DefaultFactory: "uuid4"},
			{Name: "name", Type: "varchar(128)"},
			{Name: "world_id", Type: "uuid", ForeignKey: "worlds"},
			{Name: "description", Type: "text", Nullable: true},
			{Name: "level", Type: "integer", Nullable: true, Default: 1},
			{Name: "created_at", Type: "timestamp", ServerDefault: "CURRENT_TIMESTAMP"},
		},
		Relationships: []*load.Relationship{
			{Name: "world", Target: "World", Pairs: [][]string{{"world_id", "id"}}},
			{Name: "locations", Target: "Location", Collection: true, Pairs: [][]string{{"id", "zone_id"}}},
		},
	}
}

// staticSource returns a source describing the given schemas.
func staticSource(schemas ...*load.Schema) load.SourceFunc {
	return func(ctx context.Context, entity string) (*load.Schema, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, s := range schemas {
			if s.Name == entity {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", load.ErrNotFound, entity)
	}
}

func attributes(fs []*Field) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Attribute
	}
	return names
}

func TestIntrospector_Analyze(t *testing.T) {
	ctx := context.Background()
	i := NewIntrospector().WithSource(staticSource(zoneSchema()))
	d, err := i.Analyze(ctx, Config{Entity: "Zone"})
	require.NoError(t, err)

	assert.Equal(t, "Zone", d.Name)
	assert.Equal(t, "zones", d.Table)
	assert.Equal(t, "A playable area of a world.", d.Comment)
	assert.Equal(t, []string{"id", "name", "world_id", "description", "level", "created_at"}, attributes(d.Fields))
	assert.Equal(t, []string{"name", "world_id", "created_at"}, attributes(d.Required))
	assert.Equal(t, []string{"id", "description", "level"}, attributes(d.Optional))
	assert.Equal(t, []string{"name", "world_id", "description", "level", "created_at"}, attributes(d.SearchFields()))

	t.Run("types", func(t *testing.T) {
		assert.Equal(t, field.TypeIdentifier, d.Field("id").Type)
		assert.Equal(t, field.TypeString, d.Field("name").Type)
		assert.Equal(t, field.TypeInt, d.Field("level").Type)
		assert.Equal(t, field.TypeDateTime, d.Field("created_at").Type)
		assert.Equal(t, "optional(string)", d.Field("description").TypeAnnotation())
		assert.Equal(t, "string", d.Field("name").TypeAnnotation())
		assert.Equal(t, "WorldID", d.Field("world_id").StructField())
		assert.Equal(t, "worldID", d.Field("world_id").Param())
		assert.Nil(t, d.Field("missing"))
	})

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, field.Factory("uuid4", false), d.Field("id").Default)
		assert.Equal(t, field.Literal("1"), d.Field("level").Default)
		assert.Equal(t, field.Factory("CURRENT_TIMESTAMP", true), d.Field("created_at").Default)
		assert.True(t, d.Field("name").Default.IsZero())
	})

	t.Run("identity", func(t *testing.T) {
		require.NotNil(t, d.ID())
		assert.Equal(t, "id", d.ID().Attribute)
		assert.Equal(t, "worlds", d.Field("world_id").ForeignKey)
	})

	t.Run("relationships", func(t *testing.T) {
		require.Len(t, d.Relationships, 2)
		assert.Equal(t, &Relationship{Name: "world", Target: "World", ForeignKey: "world_id"}, d.Relationships[0])
		assert.Equal(t, &Relationship{Name: "locations", Target: "Location", Collection: true, ForeignKey: "id"}, d.Relationships[1])
		assert.Equal(t, "Locations", d.Relationships[1].StructField())
	})

	t.Run("idempotent", func(t *testing.T) {
		again, err := i.Analyze(ctx, Config{Entity: "Zone"})
		require.NoError(t, err)
		assert.Equal(t, d, again)
	})
}

func TestIntrospector_Resolution(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown entity", func(t *testing.T) {
		_, err := NewIntrospector().WithSource(staticSource(zoneSchema())).Analyze(ctx, Config{Entity: "Guild"})
		require.Error(t, err)
		assert.True(t, IsResolutionError(err))
		assert.True(t, errors.Is(err, load.ErrNotFound))
	})

	t.Run("default file source", func(t *testing.T) {
		_, err := NewIntrospector().Analyze(ctx, Config{Entity: "Guild", SchemaLocator: t.TempDir()})
		require.Error(t, err)
		assert.True(t, IsResolutionError(err))
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := NewIntrospector().Analyze(ctx, Config{Entity: "Zone", SchemaLocator: "nosql://localhost"})
		var rerr *ResolutionError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "nosql://localhost", rerr.Locator)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewIntrospector().WithSource(staticSource(zoneSchema())).Analyze(ctx, Config{Entity: "Zone"})
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, IsIntrospectionError(err))
	})

	t.Run("source failure", func(t *testing.T) {
		src := load.SourceFunc(func(context.Context, string) (*load.Schema, error) {
			return nil, errors.New("connection refused")
		})
		_, err := NewIntrospector().WithSource(src).Analyze(ctx, Config{Entity: "Zone"})
		require.Error(t, err)
		assert.True(t, IsIntrospectionError(err))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestNewDescriptor(t *testing.T) {
	t.Run("table defaults to plural", func(t *testing.T) {
		d, err := NewDescriptor(&load.Schema{
			Name:    "LocationSubType",
			Columns: []*load.Column{{Name: "code", Type: "string"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "location_sub_types", d.Table)
		assert.Nil(t, d.ID(), "no primary key")
	})

	t.Run("composite primary key", func(t *testing.T) {
		d, err := NewDescriptor(&load.Schema{
			Name: "Membership",
			Columns: []*load.Column{
				{Name: "guild_id", Type: "integer", PrimaryKey: true},
				{Name: "player_id", Type: "integer", PrimaryKey: true},
			},
		})
		require.NoError(t, err)
		assert.Len(t, d.PrimaryKeys(), 2)
		assert.Nil(t, d.ID())
		assert.Empty(t, d.Required)
	})

	t.Run("attribute overrides column name", func(t *testing.T) {
		d, err := NewDescriptor(&load.Schema{
			Name:    "Skill",
			Columns: []*load.Column{{Name: "code", Attribute: "skill_code", Type: "string"}},
		})
		require.NoError(t, err)
		f := d.Field("skill_code")
		require.NotNil(t, f)
		assert.Equal(t, "code", f.Name)
	})

	t.Run("unknown types degrade", func(t *testing.T) {
		d, err := NewDescriptor(&load.Schema{
			Name: "Area",
			Columns: []*load.Column{
				{Name: "shape", Type: "geometry(Point,4326)"},
				{Name: "ids", Type: "char(36)", Variant: "uuid"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, field.TypeUnknown, d.Field("shape").Type)
		assert.Equal(t, field.TypeIdentifier, d.Field("ids").Type)
	})

	t.Run("mutable literal defaults from yaml are factories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faction.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
name: Faction
columns:
  - {name: id, type: integer, primary_key: true}
  - {name: tags, type: "text[]", nullable: true, default: []}
  - {name: attrs, type: json, nullable: true, default: {}}
`), 0o644))
		schemas, err := load.ReadFile(path)
		require.NoError(t, err)
		require.Len(t, schemas, 1)
		d, err := NewDescriptor(schemas[0])
		require.NoError(t, err)
		assert.Equal(t, field.Factory("list", false), d.Field("tags").Default)
		assert.Equal(t, field.Factory("dict", false), d.Field("attrs").Default)
	})

	t.Run("composite relationship pairing", func(t *testing.T) {
		s := zoneSchema()
		s.Relationships = []*load.Relationship{
			{Name: "region", Target: "Region", Pairs: [][]string{{"world_id", "world_id"}, {"name", "zone_name"}}},
			{Name: "owner", Target: "Player"},
		}
		d, err := NewDescriptor(s)
		require.NoError(t, err)
		assert.Empty(t, d.Relationships[0].ForeignKey)
		assert.Empty(t, d.Relationships[1].ForeignKey)
	})

	errs := []struct {
		name    string
		schema  *load.Schema
		message string
	}{
		{
			name:    "nil schema",
			message: "schema without entity name",
		},
		{
			name:    "no columns",
			schema:  &load.Schema{Name: "Zone"},
			message: "entity has no columns",
		},
		{
			name:    "no type information",
			schema:  &load.Schema{Name: "Zone", Columns: []*load.Column{{Name: "shape"}}},
			message: "column has no type information",
		},
		{
			name: "duplicate attribute",
			schema: &load.Schema{Name: "Zone", Columns: []*load.Column{
				{Name: "name", Type: "string"},
				{Name: "title", Attribute: "name", Type: "string"},
			}},
			message: `duplicate attribute "name"`,
		},
		{
			name: "conflicting defaults",
			schema: &load.Schema{Name: "Zone", Columns: []*load.Column{
				{Name: "level", Type: "integer", Default: 1, ServerDefault: "1"},
			}},
			message: "conflicting default",
		},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor(tt.schema)
			require.Error(t, err)
			assert.True(t, IsIntrospectionError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestColumnDefault(t *testing.T) {
	tests := []struct {
		name   string
		column *load.Column
		typ    field.Type
		want   field.Default
	}{
		{"none", &load.Column{}, field.TypeString, field.NoDefault()},
		{"string literal", &load.Column{Default: "neutral"}, field.TypeString, field.Literal("neutral")},
		{"bool literal", &load.Column{Default: false}, field.TypeBool, field.Literal("false")},
		{"float literal", &load.Column{Default: 0.5}, field.TypeFloat, field.Literal("0.5")},
		{"factory", &load.Column{DefaultFactory: "list"}, field.TypeList, field.Factory("list", false)},
		{"empty list literal", &load.Column{Default: []any{}}, field.TypeList, field.Factory("list", false)},
		{"list literal", &load.Column{Default: []any{"a"}}, field.TypeList, field.Factory("list", false)},
		{"empty map literal", &load.Column{Default: map[string]any{}}, field.TypeJSON, field.Factory("dict", false)},
		{"server literal", &load.Column{ServerDefault: "'neutral'"}, field.TypeString, field.Literal("neutral")},
		{"server expression", &load.Column{ServerDefault: "now()"}, field.TypeDateTime, field.Factory("now()", true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := columnDefault(tt.column, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
