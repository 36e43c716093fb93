package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "internal", "domain")
		cfg, err := NewConfig("Zone", WithTarget(target), WithPackage("example.com/game/internal/domain"))
		require.NoError(t, err)

		assert.Equal(t, "Zone", cfg.Entity)
		assert.Equal(t, target, cfg.Target)
		assert.Equal(t, AllArtifacts(), cfg.Artifacts)
		assert.Equal(t, DefaultHeader, cfg.Header)
		assert.False(t, cfg.Overwrite)
		assert.False(t, cfg.Tests)
		assert.DirExists(t, target, "target is created")
	})

	t.Run("relative target is made absolute", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := NewConfig("Zone", WithPackage("example.com/game/internal/domain"))
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(cfg.Target))
		assert.True(t, strings.HasSuffix(cfg.Target, filepath.FromSlash(DefaultTarget)), cfg.Target)
	})

	t.Run("package derived from go.mod", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/game\n\ngo 1.24\n"), 0o644))
		cfg, err := NewConfig("Zone", WithTarget(filepath.Join(root, "internal", "domain")))
		require.NoError(t, err)
		assert.Equal(t, "example.com/game/internal/domain", cfg.Package)
	})

	t.Run("invalid entity names", func(t *testing.T) {
		for _, name := range []string{"", "zone", "Location_Type", "Zone Type", "1Zone"} {
			_, err := NewConfig(name, WithTarget(t.TempDir()))
			require.Error(t, err, name)
			assert.True(t, IsConfigError(err), name)
		}
	})

	t.Run("option errors are returned", func(t *testing.T) {
		_, err := NewConfig("Zone", WithTarget(""))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("all kinds disabled", func(t *testing.T) {
		_, err := NewConfig("Zone", WithTarget(t.TempDir()), WithoutKinds(Kinds...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one artifact kind")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		option string
	}{
		{"missing entity", Config{Target: "/out", Package: "p"}, "Entity"},
		{"relative target", Config{Entity: "Zone", Target: "out", Package: "p"}, "Target"},
		{"missing package", Config{Entity: "Zone", Target: "/out"}, "Package"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.option, cerr.Option)
		})
	}
}

func TestPackagePath(t *testing.T) {
	t.Run("nested module directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/org/game\n"), 0o644))
		dir := filepath.Join(root, "pkg", "domain")
		require.NoError(t, os.MkdirAll(dir, 0o755))

		pkg, err := PackagePath(dir)
		require.NoError(t, err)
		assert.Equal(t, "github.com/org/game/pkg/domain", pkg)

		pkg, err = PackagePath(root)
		require.NoError(t, err)
		assert.Equal(t, "github.com/org/game", pkg)
	})

	t.Run("go.mod without module directive", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.24\n"), 0o644))
		_, err := PackagePath(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no module directive")
	})
}

func TestOptions(t *testing.T) {
	t.Run("WithPackage rejects invalid paths", func(t *testing.T) {
		for _, pkg := range []string{"", "example.com/game/", "example.com/my game", `example.com\game`} {
			c := &Config{}
			err := WithPackage(pkg)(c)
			require.Error(t, err, pkg)
			assert.True(t, IsConfigError(err))
			assert.Empty(t, c.Package)
		}
	})

	t.Run("WithoutKinds", func(t *testing.T) {
		c := &Config{Artifacts: AllArtifacts()}
		require.NoError(t, WithoutKinds(KindRepository, KindManager)(c))
		assert.Equal(t, []Kind{KindEntity, KindService, KindSchema, KindRoutes}, c.Artifacts.Kinds())

		err := WithoutKinds(Kind(42))(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("WithArtifacts", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithArtifacts(Artifacts{Entity: true})(c))
		assert.Equal(t, []Kind{KindEntity}, c.Artifacts.Kinds())
		require.Error(t, WithArtifacts(Artifacts{})(c))
	})

	t.Run("plain setters", func(t *testing.T) {
		c := &Config{}
		for _, opt := range []Option{
			WithSchemaLocator("sqlite://game.db"),
			WithOverwrite(true),
			WithAPIPrefix("/api/zones"),
			WithAPITag("Areas"),
			WithTests(true),
			WithTemplateDir("templates"),
			WithHeader("Code generated. DO NOT EDIT."),
		} {
			require.NoError(t, opt(c))
		}
		assert.Equal(t, Config{
			SchemaLocator: "sqlite://game.db",
			Overwrite:     true,
			APIPrefix:     "/api/zones",
			APITag:        "Areas",
			Tests:         true,
			TemplateDir:   "templates",
			Header:        "Code generated. DO NOT EDIT.",
		}, *c)
	})
}
