package gen

import (
	"fmt"

	"github.com/syssam/layergen/compiler/naming"
)

// Kind is an artifact kind: one generated layer of an entity.
type Kind uint8

// Artifact kinds, in emission order.
const (
	KindEntity Kind = iota
	KindRepository
	KindManager
	KindService
	KindSchema
	KindRoutes
	endKinds
)

// Kinds holds all artifact kinds in the fixed emission order
// entity → repository → manager → service → api_schema → api_routes.
var Kinds = []Kind{KindEntity, KindRepository, KindManager, KindService, KindSchema, KindRoutes}

var kindNames = [...]string{
	KindEntity:     "entity",
	KindRepository: "repository",
	KindManager:    "manager",
	KindService:    "service",
	KindSchema:     "api_schema",
	KindRoutes:     "api_routes",
}

var kindDirs = [...]string{
	KindEntity:     "entities",
	KindRepository: "repositories",
	KindManager:    "managers",
	KindService:    "services",
	KindSchema:     "schemas",
	KindRoutes:     "routes",
}

// String returns the kind name, e.g. "api_schema".
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Dir returns the output subdirectory of the kind. It is also the Go package
// name of the generated files.
func (k Kind) Dir() string {
	if k < endKinds {
		return kindDirs[k]
	}
	return ""
}

// File returns the file name of the kind's artifact for the given entity
// names, e.g. "zone_repository.go".
func (k Kind) File(n naming.Names) string {
	var stem string
	switch k {
	case KindEntity:
		stem = n.EntityFile
	case KindRepository:
		stem = n.RepositoryFile
	case KindManager:
		stem = n.ManagerFile
	case KindService:
		stem = n.ServiceFile
	case KindSchema:
		stem = n.SchemaFile
	case KindRoutes:
		stem = n.RoutesFile
	default:
		return ""
	}
	return stem + ".go"
}

// ParseKind parses a kind name. Both "api_schema" and "schema" (and
// "api_routes" and "routes") are accepted.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	switch s {
	case "schema":
		return KindSchema, nil
	case "routes":
		return KindRoutes, nil
	}
	return 0, fmt.Errorf("layergen: unknown artifact kind %q", s)
}

// Artifacts holds the six independent artifact enable flags.
type Artifacts struct {
	Entity     bool `json:"entity" yaml:"entity" koanf:"entity"`
	Repository bool `json:"repository" yaml:"repository" koanf:"repository"`
	Manager    bool `json:"manager" yaml:"manager" koanf:"manager"`
	Service    bool `json:"service" yaml:"service" koanf:"service"`
	Schema     bool `json:"api_schema" yaml:"api_schema" koanf:"api_schema"`
	Routes     bool `json:"api_routes" yaml:"api_routes" koanf:"api_routes"`
}

// AllArtifacts returns the flags with every kind enabled.
func AllArtifacts() Artifacts {
	return Artifacts{Entity: true, Repository: true, Manager: true, Service: true, Schema: true, Routes: true}
}

// Enabled reports if the kind is enabled.
func (a Artifacts) Enabled(k Kind) bool {
	switch k {
	case KindEntity:
		return a.Entity
	case KindRepository:
		return a.Repository
	case KindManager:
		return a.Manager
	case KindService:
		return a.Service
	case KindSchema:
		return a.Schema
	case KindRoutes:
		return a.Routes
	default:
		return false
	}
}

// Set enables or disables the kind.
func (a *Artifacts) Set(k Kind, enabled bool) {
	switch k {
	case KindEntity:
		a.Entity = enabled
	case KindRepository:
		a.Repository = enabled
	case KindManager:
		a.Manager = enabled
	case KindService:
		a.Service = enabled
	case KindSchema:
		a.Schema = enabled
	case KindRoutes:
		a.Routes = enabled
	}
}

// Kinds returns the enabled kinds in emission order.
func (a Artifacts) Kinds() []Kind {
	var ks []Kind
	for _, k := range Kinds {
		if a.Enabled(k) {
			ks = append(ks, k)
		}
	}
	return ks
}
