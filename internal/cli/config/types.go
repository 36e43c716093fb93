// Package config provides configuration management for the layergen CLI.
package config

import (
	"fmt"

	"github.com/syssam/layergen/compiler/gen"
)

// Default values.
const (
	DefaultConfigFile = "layergen.yaml"
	DefaultOutputDir  = gen.DefaultTarget
	EnvPrefix         = "LAYERGEN_"
)

// Config holds the CLI configuration. Keys match the long flag names with
// dashes replaced by underscores, in layergen.yaml as well as in LAYERGEN_*
// environment variables.
type Config struct {
	ModelModule string `koanf:"model_module"`
	OutputDir   string `koanf:"output_dir"`
	Package     string `koanf:"package"`
	Templates   string `koanf:"templates"`
	Header      string `koanf:"header"`
	APIPrefix   string `koanf:"api_prefix"`
	APITag      string `koanf:"api_tag"`
	Force       bool   `koanf:"force"`
	Tests       bool   `koanf:"tests"`
	Workers     int    `koanf:"workers"`
	Verbose     bool   `koanf:"verbose"`

	NoEntity     bool `koanf:"no_entity"`
	NoRepository bool `koanf:"no_repository"`
	NoManager    bool `koanf:"no_manager"`
	NoService    bool `koanf:"no_service"`
	NoAPISchema  bool `koanf:"no_api_schema"`
	NoAPIRoutes  bool `koanf:"no_api_routes"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{OutputDir: DefaultOutputDir}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if len(c.Artifacts().Kinds()) == 0 {
		return fmt.Errorf("every artifact kind is disabled, nothing to generate")
	}
	return nil
}

// Artifacts returns the artifact kinds left enabled by the no_* switches.
func (c *Config) Artifacts() gen.Artifacts {
	return gen.Artifacts{
		Entity:     !c.NoEntity,
		Repository: !c.NoRepository,
		Manager:    !c.NoManager,
		Service:    !c.NoService,
		Schema:     !c.NoAPISchema,
		Routes:     !c.NoAPIRoutes,
	}
}

// Options returns the generator options for one entity.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithSchemaLocator(c.ModelModule),
		gen.WithTarget(c.OutputDir),
		gen.WithArtifacts(c.Artifacts()),
		gen.WithOverwrite(c.Force),
		gen.WithAPIPrefix(c.APIPrefix),
		gen.WithAPITag(c.APITag),
		gen.WithTests(c.Tests),
		gen.WithTemplateDir(c.Templates),
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	return opts
}
