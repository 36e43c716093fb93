package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/layergen/compiler/gen"
	"github.com/syssam/layergen/compiler/gen/golang"
	"github.com/syssam/layergen/compiler/load"
	"github.com/syssam/layergen/internal/cli/config"
)

// debounceDelay groups the burst of events a single save produces.
const debounceDelay = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <model-name>",
		Short: "Regenerate an entity whenever its schema files change",
		Long: `Generate every layer of the entity, then watch the file schema source and
regenerate on each change. Existing files are always overwritten.

Only file schema sources can be watched.`,
		Example: `  # Regenerate Zone while editing models/zone.yaml
  layergen watch Zone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}

	addLayerFlags(cmd.Flags())

	return cmd
}

// watchPath returns the directory to watch for the locator and, for a single
// file source, the name of the file.
func watchPath(locator string) (dir, name string, err error) {
	if locator == "" {
		locator = load.DefaultDir
	}
	if strings.Contains(locator, "://") {
		return "", "", fmt.Errorf("watch requires a file schema source, got %q", locator)
	}
	info, err := os.Stat(locator)
	if err != nil {
		return "", "", fmt.Errorf("watch schema source: %w", err)
	}
	if info.IsDir() {
		return locator, "", nil
	}
	return filepath.Dir(locator), filepath.Base(locator), nil
}

// schemaChange reports if the event touches a schema file of interest.
func schemaChange(event fsnotify.Event, name string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if name != "" {
		return filepath.Base(event.Name) == name
	}
	switch filepath.Ext(event.Name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func runWatch(cmd *cobra.Command, entity string) error {
	ctx := cmd.Context()
	cfg := *config.GetConfig(ctx)
	cfg.Force = true
	logger := config.GetLogger(ctx)

	dir, name, err := watchPath(cfg.ModelModule)
	if err != nil {
		return err
	}
	cfgs, err := entityConfigs(&cfg, []string{entity})
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("watching schema source", "entity", entity, "dir", dir)
	return watch(ctx, watcher, cmd.OutOrStdout(), logger, cfgs[0], name)
}

// watch generates once, then again after every burst of schema changes until
// ctx is done. Runs happen on this goroutine one after another.
func watch(ctx context.Context, watcher *fsnotify.Watcher, out io.Writer, logger *slog.Logger, cfg gen.Config, name string) error {
	regenerate := func() {
		// A fresh generator per run drops the template cache of the last one.
		paths, err := gen.NewGenerator(golang.New()).WithLogger(logger).Generate(ctx, cfg)
		for _, p := range paths {
			_, _ = fmt.Fprintln(out, p)
		}
		if err != nil {
			logger.Error("generation failed", "entity", cfg.Entity, "error", err)
		}
	}
	regenerate()

	var (
		timer    *time.Timer
		debounce <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !schemaChange(event, name) {
				continue
			}
			logger.Debug("schema file changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceDelay)
			debounce = timer.C

		case <-debounce:
			debounce = nil
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
