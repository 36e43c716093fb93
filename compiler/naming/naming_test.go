package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Zone", "zone"},
		{"Faction", "faction"},
		{"LocationSubType", "location_sub_type"},
		{"SkillTree", "skill_tree"},
		{"A", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}

func TestDerive(t *testing.T) {
	n := Derive("LocationSubType")
	assert.Equal(t, "LocationSubType", n.Entity)
	assert.Equal(t, "location_sub_type", n.Snake)
	assert.Equal(t, "location_sub_types", n.Plural)
	assert.Equal(t, "Location Sub Type", n.Readable)
	assert.Equal(t, "locationSubType", n.Camel)
	assert.Equal(t, "location_sub_type_entity", n.EntityFile)
	assert.Equal(t, "location_sub_type_repository", n.RepositoryFile)
	assert.Equal(t, "location_sub_type_manager", n.ManagerFile)
	assert.Equal(t, "location_sub_type_service", n.ServiceFile)
	assert.Equal(t, "location_sub_type_schema", n.SchemaFile)
	assert.Equal(t, "location_sub_type_routes", n.RoutesFile)
	assert.Equal(t, "location_sub_types", n.RoutePrefix)
	assert.Equal(t, "LocationSubType", n.Tag)
	assert.Equal(t, "NewLocationSubType", n.Constructor)
	assert.Equal(t, "LocationSubTypeRepository", n.Repository)
	assert.Equal(t, "LocationSubTypeResponse", n.Response)
}

func TestDerive_Deterministic(t *testing.T) {
	for _, name := range []string{"Zone", "Faction", "Skill", "LocationSubType"} {
		assert.Equal(t, Derive(name), Derive(name))
	}
}

func TestReadable_RoundTrip(t *testing.T) {
	// Re-capitalizing the snake form yields the original word boundaries.
	for _, words := range [][]string{
		{"Zone"},
		{"Location", "Sub", "Type"},
		{"Faction", "Rank"},
		{"Skill", "Tree", "Node"},
	} {
		name := strings.Join(words, "")
		n := Derive(name)
		assert.Equal(t, strings.Join(words, " "), n.Readable, name)
		assert.Equal(t, len(words), len(strings.Split(n.Snake, "_")), name)
	}
}

func TestPlural_SuffixOnly(t *testing.T) {
	for _, s := range []string{"zone", "location_sub_type", "city", "mouse", "status", ""} {
		assert.Equal(t, s+"s", Plural(s))
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"world_id", "WorldID"},
		{"id", "ID"},
		{"name", "Name"},
		{"api_url", "APIURL"},
		{"full-admin", "FullAdmin"},
		{"created_at", "CreatedAt"},
		{"uuid", "UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"world_id", "worldID"},
		{"id", "id"},
		{"description", "description"},
		{"location_sub_type", "locationSubType"},
		{"url_path", "urlPath"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camel(tt.input))
		})
	}
}

func TestParam(t *testing.T) {
	assert.Equal(t, "worldID", Param("world_id"))
	assert.Equal(t, "_type", Param("type"))
	assert.Equal(t, "_range", Param("range"))
	assert.Equal(t, "_string", Param("string"))
	assert.Equal(t, "_err", Param("err"))
}

func TestEntityFromTable(t *testing.T) {
	assert.Equal(t, "Zone", EntityFromTable("zones"))
	assert.Equal(t, "World", EntityFromTable("worlds"))
	assert.Equal(t, "LocationSubType", EntityFromTable("location_sub_types"))
	assert.Equal(t, "Faction", EntityFromTable("faction"))
	assert.Equal(t, "", EntityFromTable(""))
}

func TestValidEntity(t *testing.T) {
	require.True(t, ValidEntity("Zone"))
	require.True(t, ValidEntity("LocationSubType"))
	require.False(t, ValidEntity("zone"))
	require.False(t, ValidEntity("Location_Sub"))
	require.False(t, ValidEntity(""))
	require.False(t, ValidEntity("9Lives"))
}
