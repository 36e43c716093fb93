// Package commands implements the layergen subcommands.
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/layergen/compiler/gen"
	"github.com/syssam/layergen/compiler/gen/golang"
	"github.com/syssam/layergen/internal/cli/config"

	// Register the database schema sources.
	_ "github.com/syssam/layergen/compiler/load/sqlsource"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <model-name>...",
		Short: "Generate the domain layers of one or more entities",
		Long: `Generate the entity, repository, manager, service, API schema and API
routes files of each named entity.

Entities are described by a schema source: a directory of YAML or JSON
files (default "models"), a single schema file, or a database locator such
as sqlite://game.db. Existing files are never replaced without --force.`,
		Example: `  # Generate every layer of Zone from ./models
  layergen generate Zone

  # Several entities, without the API routes
  layergen generate Zone World Faction --no-api-routes

  # Read the schema from a database and overwrite existing files
  layergen generate Zone --model-module sqlite://game.db --force`,
		Aliases: []string{"gen"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args)
		},
	}

	addLayerFlags(cmd.Flags())
	cmd.Flags().Bool("force", false, "Overwrite existing files")
	cmd.Flags().Bool("tests", false, "Request test generation (not implemented, logged only)")
	cmd.Flags().Int("workers", 0, "Entities generated in parallel (default: number of CPUs)")

	return cmd
}

// addLayerFlags adds the flags shared by generate and watch.
func addLayerFlags(fs *pflag.FlagSet) {
	fs.String("model-module", "", "Schema source: directory, file or database locator (default: models)")
	fs.StringP("output-dir", "o", "", "Output root directory (default: "+config.DefaultOutputDir+")")
	fs.String("package", "", "Go import path of the output root (default: derived from go.mod)")
	fs.String("templates", "", "Directory of <kind>.tmpl files replacing the built-in renderers")
	fs.String("api-prefix", "", "Override the API route prefix")
	fs.String("api-tag", "", "Override the API tag")
	fs.Bool("no-entity", false, "Skip the entity file")
	fs.Bool("no-repository", false, "Skip the repository file")
	fs.Bool("no-manager", false, "Skip the manager file")
	fs.Bool("no-service", false, "Skip the service file")
	fs.Bool("no-api-schema", false, "Skip the API schema file")
	fs.Bool("no-api-routes", false, "Skip the API routes file")
}

// entityConfigs resolves one generation config per entity.
func entityConfigs(cfg *config.Config, entities []string) ([]gen.Config, error) {
	if len(entities) > 1 && (cfg.APIPrefix != "" || cfg.APITag != "") {
		return nil, errors.New("--api-prefix and --api-tag apply to a single model")
	}
	cfgs := make([]gen.Config, 0, len(entities))
	for _, entity := range entities {
		c, err := gen.NewConfig(entity, cfg.Options()...)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, c)
	}
	return cfgs, nil
}

func runGenerate(cmd *cobra.Command, entities []string) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	cfgs, err := entityConfigs(cfg, entities)
	if err != nil {
		return err
	}
	g := gen.NewGenerator(golang.New()).WithLogger(logger).WithWorkers(cfg.Workers)
	results, err := g.GenerateAll(ctx, cfgs)
	out := cmd.OutOrStdout()
	for _, paths := range results {
		for _, p := range paths {
			_, _ = fmt.Fprintln(out, p)
		}
	}
	return err
}
