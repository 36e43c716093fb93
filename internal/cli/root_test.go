package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project changes into a fresh directory and returns the absolute path of
// the shared schema files.
func project(t *testing.T) string {
	t.Helper()
	models, err := filepath.Abs("../../compiler/load/testdata/models")
	require.NoError(t, err)
	t.Chdir(t.TempDir())
	return models
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "layergen", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "watch", "version"})
}

func TestRun_Version(t *testing.T) {
	project(t)

	code, out, _ := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "layergen v"+Version)

	code, out, _ = run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "layergen "+Version+"\n", out)
}

func TestRun_Generate(t *testing.T) {
	models := project(t)
	args := []string{"generate", "Zone", "--model-module", models, "-o", "out", "--package", "example.com/game/out"}

	code, out, errOut := run(t, args...)
	require.Equal(t, 0, code, errOut)
	paths := lines(out)
	require.Len(t, paths, 6)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
	assert.Contains(t, errOut, "artifact written")

	t.Run("existing files are not replaced", func(t *testing.T) {
		code, _, errOut := run(t, args...)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "Error: layergen:")
		assert.Contains(t, errOut, "overwrite not enabled")
	})

	t.Run("force", func(t *testing.T) {
		code, out, _ := run(t, append(args, "--force")...)
		assert.Equal(t, 0, code)
		assert.Len(t, lines(out), 6)
	})
}

func TestRun_ConfigFile(t *testing.T) {
	models := project(t)
	cfg := "model_module: " + models + "\noutput_dir: domain\npackage: example.com/game/domain\nno_api_routes: true\n"
	require.NoError(t, os.WriteFile("layergen.yaml", []byte(cfg), 0o600))

	code, out, errOut := run(t, "generate", "Zone")
	require.Equal(t, 0, code, errOut)
	assert.Len(t, lines(out), 5)
	assert.NoDirExists(t, filepath.Join("domain", "routes"))

	t.Run("env overrides the file", func(t *testing.T) {
		t.Setenv("LAYERGEN_NO_API_ROUTES", "false")
		t.Setenv("LAYERGEN_OUTPUT_DIR", "env")
		code, out, errOut := run(t, "generate", "World")
		require.Equal(t, 0, code, errOut)
		assert.Len(t, lines(out), 6)
		assert.DirExists(t, filepath.Join("env", "routes"))
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("LAYERGEN_OUTPUT_DIR", "env")
		code, _, errOut := run(t, "generate", "Faction", "-o", "flags")
		require.Equal(t, 0, code, errOut)
		assert.FileExists(t, filepath.Join("flags", "entities", "faction_entity.go"))
		assert.NoFileExists(t, filepath.Join("env", "entities", "faction_entity.go"))
	})
}

func TestRun_Errors(t *testing.T) {
	models := project(t)

	t.Run("unresolved entity", func(t *testing.T) {
		code, out, errOut := run(t, "generate", "Guild", "--model-module", models, "--package", "example.com/game")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Error: layergen: cannot resolve entity Guild")
		assert.NotContains(t, errOut, "caused by")
	})

	t.Run("verbose prints the cause chain", func(t *testing.T) {
		code, _, errOut := run(t, "generate", "Guild", "--model-module", models, "--package", "example.com/game", "-v")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "caused by")
		assert.Contains(t, errOut, "entity not found")
	})

	t.Run("missing model name", func(t *testing.T) {
		code, _, errOut := run(t, "generate")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "requires at least 1 arg")
	})

	t.Run("unknown command", func(t *testing.T) {
		code, _, _ := run(t, "destroy")
		assert.Equal(t, 1, code)
	})

	t.Run("missing config file", func(t *testing.T) {
		code, _, errOut := run(t, "generate", "Zone", "--config", "nope.yaml")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "config file nope.yaml not found")
	})
}
