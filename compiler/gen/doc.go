// Package gen generates the layered artifacts of a domain entity.
//
// For one entity, the generator emits six artifact kinds, each in its own
// subdirectory of the output root:
//
//	entities/zone_entity.go          entity type and constructor
//	repositories/zone_repository.go  storage access
//	managers/zone_manager.go         domain logic over the repository
//	services/zone_service.go         API-facing service
//	schemas/zone_schema.go           API payloads
//	routes/zone_routes.go            HTTP routes
//
// # Pipeline
//
//	Config (NewConfig + Options)
//	        ↓
//	   Introspector ── load.Source (files or database)
//	        ↓
//	   Descriptor (fields, relationships, naming.Names)
//	        ↓
//	   Emitter: Render (Dialect or template override) → Write
//	        ↓
//	   <Target>/<subdir>/<snake>_<kind>.go
//
// Rendering is pure: Emitter.Render returns source text without touching
// the output tree, and Write is the only step with side effects. Existing
// files are never replaced unless Config.Overwrite is set.
//
// # Error Handling
//
// Failures are typed and match a sentinel with errors.Is:
//
//   - ResolutionError (ErrResolution): the entity cannot be located.
//   - IntrospectionError (ErrIntrospection): the entity cannot be normalized.
//   - ConflictError (ErrConflict): an artifact exists and overwriting is off.
//   - RenderError (ErrRender): an artifact cannot be rendered.
//   - ConfigError (ErrMissingConfig): an option is invalid.
//
// Relationship foreign keys are the only part that degrades silently: an
// irregular pairing yields an empty key instead of an error.
package gen
