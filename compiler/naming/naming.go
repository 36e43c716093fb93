// Package naming derives every naming convention the generated artifacts
// share from a canonical PascalCase entity name.
//
// All derivations are pure functions of their input: the repository artifact
// and the service artifact of one entity always agree on file stems and type
// names because both read them from the same Names value.
package naming

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Names holds the derived naming variants of one entity.
type Names struct {
	// Entity is the canonical entity name, e.g. "LocationSubType".
	Entity string `json:"entity"`
	// Snake is the snake_case singular form, e.g. "location_sub_type".
	Snake string `json:"snake"`
	// Plural is the snake_case plural form, e.g. "location_sub_types".
	Plural string `json:"plural"`
	// Readable is the human-readable form, e.g. "Location Sub Type".
	Readable string `json:"readable"`
	// Camel is the lower camel-case form, e.g. "locationSubType".
	Camel string `json:"camel"`

	// File stems, one per artifact kind.
	EntityFile     string `json:"entity_file"`
	RepositoryFile string `json:"repository_file"`
	ManagerFile    string `json:"manager_file"`
	ServiceFile    string `json:"service_file"`
	SchemaFile     string `json:"schema_file"`
	RoutesFile     string `json:"routes_file"`

	// RoutePrefix and Tag are the API defaults.
	RoutePrefix string `json:"route_prefix"`
	Tag         string `json:"tag"`

	// Type names shared across artifacts.
	Constructor string `json:"constructor"`
	Option      string `json:"option"`
	Repository  string `json:"repository"`
	Filter      string `json:"filter"`
	Manager     string `json:"manager"`
	Service     string `json:"service"`
	CreateInput string `json:"create_input"`
	UpdateInput string `json:"update_input"`
	Response    string `json:"response"`
	Routes      string `json:"routes"`
}

// Derive derives all naming variants of the given entity name.
func Derive(entity string) Names {
	snake := Snake(entity)
	return Names{
		Entity:         entity,
		Snake:          snake,
		Plural:         Plural(snake),
		Readable:       Readable(snake),
		Camel:          Camel(snake),
		EntityFile:     snake + "_entity",
		RepositoryFile: snake + "_repository",
		ManagerFile:    snake + "_manager",
		ServiceFile:    snake + "_service",
		SchemaFile:     snake + "_schema",
		RoutesFile:     snake + "_routes",
		RoutePrefix:    Plural(snake),
		Tag:            entity,
		Constructor:    "New" + entity,
		Option:         entity + "Option",
		Repository:     entity + "Repository",
		Filter:         entity + "Filter",
		Manager:        entity + "Manager",
		Service:        entity + "Service",
		CreateInput:    entity + "Create",
		UpdateInput:    entity + "Update",
		Response:       entity + "Response",
		Routes:         entity + "Routes",
	}
}

// Snake returns the snake_case form of a PascalCase name: a separator is
// inserted before each uppercase letter that is not the first rune, and the
// result is lower-cased. "LocationSubType" becomes "location_sub_type".
func Snake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Plural returns the plural form of a snake_case name. It only appends "s";
// irregular nouns are not handled.
func Plural(snake string) string { return snake + "s" }

// Readable splits a snake_case name on separators and title-cases each
// word, e.g. "location_sub_type" becomes "Location Sub Type".
func Readable(snake string) string {
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.English)
	words := strings.FieldsFunc(snake, isSep)
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

// acronyms are rendered upper-case in Go identifiers.
var acronyms = map[string]struct{}{
	"acl": {}, "api": {}, "ascii": {}, "cpu": {}, "css": {}, "dns": {},
	"eof": {}, "guid": {}, "html": {}, "http": {}, "https": {}, "id": {},
	"ip": {}, "json": {}, "lhs": {}, "qps": {}, "ram": {}, "rhs": {},
	"rpc": {}, "sla": {}, "smtp": {}, "sql": {}, "ssh": {}, "tcp": {},
	"tls": {}, "ttl": {}, "udp": {}, "ui": {}, "uid": {}, "uri": {},
	"url": {}, "utf8": {}, "uuid": {}, "vm": {}, "xml": {}, "xmpp": {},
	"xsrf": {}, "xss": {},
}

// Pascal returns the exported Go identifier of a snake_case or kebab-case
// name, honoring common initialisms: "world_id" becomes "WorldID".
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSep)
	for i, w := range words {
		if _, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = inflect.Capitalize(w)
	}
	return strings.Join(words, "")
}

// Camel returns the unexported Go identifier of a snake_case or kebab-case
// name: "world_id" becomes "worldID", "id" becomes "id".
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSep)
	if len(words) == 0 {
		return ""
	}
	first := strings.ToLower(words[0])
	if _, ok := acronyms[first]; !ok {
		first = inflect.CamelizeDownFirst(words[0])
	}
	return first + Pascal(strings.Join(words[1:], "_"))
}

// Param returns a parameter or variable name for the given field name that
// does not collide with Go keywords, predeclared identifiers or the locals
// of generated code.
func Param(s string) string {
	name := Camel(s)
	if token.Lookup(name).IsKeyword() || reserved[name] {
		return "_" + name
	}
	return name
}

// reserved holds predeclared identifiers and the names generated code uses for
// its own locals.
var reserved = map[string]bool{
	"any": true, "bool": true, "byte": true, "error": true, "string": true,
	"int": true, "len": true, "nil": true, "true": true, "false": true,
	"new": true, "make": true, "copy": true, "append": true, "cap": true,
	"ctx": true, "err": true, "opts": true, "e": true, "m": true, "v": true,
}

// EntityFromTable returns the entity name of a storage table: the table
// name is singularized and converted to PascalCase, e.g. "location_sub_types"
// becomes "LocationSubType".
func EntityFromTable(table string) string {
	words := strings.FieldsFunc(table, isSep)
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = inflect.Singularize(words[len(words)-1])
	for i, w := range words {
		words[i] = inflect.Capitalize(strings.ToLower(w))
	}
	return strings.Join(words, "")
}

// ValidEntity reports if s can be used as an entity name: an exported Go
// identifier without separators.
func ValidEntity(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s) && !strings.ContainsAny(s, "_")
}

func isSep(r rune) bool { return r == '_' || r == '-' || r == ' ' }
