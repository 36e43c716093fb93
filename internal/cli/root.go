// Package cli provides the command-line interface for layergen.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/layergen/internal/cli/commands"
	"github.com/syssam/layergen/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// session records what the root command resolved during one execution.
type session struct {
	cfg *config.Config
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "layergen",
		Short: "layergen - layered domain code generator",
		Long: `layergen reads the schema of an entity and generates its domain layers:
entity, repository, manager, service, API schema and API routes.

Settings come from flags, LAYERGEN_* environment variables and
layergen.yaml, in that order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			s.cfg = cfg

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", "path", used)
			}
			ctx := config.WithConfig(cmd.Context(), cfg)
			cmd.SetContext(config.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./layergen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())

	return rootCmd
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := &session{}
	rootCmd := newRootCmd(s)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if s.cfg != nil {
		verbose = s.cfg.Verbose
	}
	printError(stderr, err, verbose)
	return 1
}

// printError writes err, followed by its cause chain when verbose.
func printError(w io.Writer, err error, verbose bool) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	if !verbose {
		return
	}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		_, _ = fmt.Fprintf(w, "  caused by (%T): %v\n", cause, cause)
	}
}
