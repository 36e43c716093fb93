package gen

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/layergen/compiler/load"
)

// Generator runs the introspector and the emitter for entities.
type Generator struct {
	introspector *Introspector
	emitter      *Emitter
	log          *slog.Logger
	workers      int
}

// NewGenerator creates a new generator rendering with the given dialect.
//
// Example:
//
//	import "github.com/syssam/layergen/compiler/gen/golang"
//
//	cfg, err := gen.NewConfig("Zone", gen.WithTarget("internal/domain"))
//	paths, err := gen.NewGenerator(golang.New()).Generate(ctx, cfg)
func NewGenerator(d Dialect) *Generator {
	return &Generator{
		introspector: NewIntrospector(),
		emitter:      NewEmitter(d),
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:      runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of entities GenerateAll processes in parallel.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.log = l
		g.introspector.WithLogger(l)
	}
	return g
}

// WithSource makes the generator describe entities from the given source
// instead of opening Config.SchemaLocator.
func (g *Generator) WithSource(s load.Source) *Generator {
	g.introspector.WithSource(s)
	return g
}

// Emitter returns the emitter of the generator.
func (g *Generator) Emitter() *Emitter { return g.emitter }

// Introspector returns the introspector of the generator.
func (g *Generator) Introspector() *Introspector { return g.introspector }

// Generate introspects the configured entity and emits each enabled artifact
// kind in the fixed order entity, repository, manager, service, api_schema,
// api_routes. It returns the written paths. Files written before a failure
// are kept and returned along with the error.
func (g *Generator) Generate(ctx context.Context, cfg Config) ([]string, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := g.log.With("entity", cfg.Entity)
	if cfg.Tests {
		log.Info("test generation is not implemented, ignoring")
	}
	d, err := g.introspector.Analyze(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("entity introspected", "table", d.Table, "fields", len(d.Fields),
		"required", len(d.Required), "optional", len(d.Optional))
	var paths []string
	for _, k := range cfg.Artifacts.Kinds() {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := g.emitter.Emit(k, d, cfg)
		if err != nil {
			return paths, err
		}
		log.Info("artifact written", "kind", k, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// GenerateAll generates several entities concurrently, at most Workers at a
// time. Each entity owns its files, so a batch must not target the same
// entity and output root twice. The written paths are returned in the order
// of cfgs. The first failure cancels the remaining entities.
func (g *Generator) GenerateAll(ctx context.Context, cfgs []Config) ([][]string, error) {
	seen := make(map[[2]string]bool, len(cfgs))
	for _, cfg := range cfgs {
		key := [2]string{cfg.Target, cfg.Entity}
		if seen[key] {
			return nil, NewConfigError("Entity", cfg.Entity, "entity listed twice for the same target")
		}
		seen[key] = true
	}
	results := make([][]string, len(cfgs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, cfg := range cfgs {
		eg.Go(func() error {
			paths, err := g.Generate(ctx, cfg)
			results[i] = paths
			return err
		})
	}
	return results, eg.Wait()
}
