package gen

import "strings"

// Option configures code generation.
type Option func(*Config) error

// WithSchemaLocator sets the schema source locator: a directory, a file or
// a registered database locator (e.g. "sqlite://game.db").
func WithSchemaLocator(locator string) Option {
	return func(c *Config) error {
		c.SchemaLocator = locator
		return nil
	}
}

// WithTarget sets the output root.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the Go import path of the output root.
// For example: "github.com/org/game/internal/domain".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if strings.HasSuffix(pkg, "/") || strings.ContainsAny(pkg, " \\") {
			return NewConfigError("Package", pkg, "invalid import path")
		}
		c.Package = pkg
		return nil
	}
}

// WithArtifacts replaces the artifact enable flags.
func WithArtifacts(a Artifacts) Option {
	return func(c *Config) error {
		if len(a.Kinds()) == 0 {
			return NewConfigError("Artifacts", nil, "at least one artifact kind must be enabled")
		}
		c.Artifacts = a
		return nil
	}
}

// WithoutKinds disables the given artifact kinds.
func WithoutKinds(kinds ...Kind) Option {
	return func(c *Config) error {
		a := c.Artifacts
		for _, k := range kinds {
			if k >= endKinds {
				return NewConfigError("Artifacts", k, "unknown artifact kind")
			}
			a.Set(k, false)
		}
		return WithArtifacts(a)(c)
	}
}

// WithOverwrite allows or forbids replacing existing artifact files.
func WithOverwrite(overwrite bool) Option {
	return func(c *Config) error {
		c.Overwrite = overwrite
		return nil
	}
}

// WithAPIPrefix overrides the derived API route prefix.
func WithAPIPrefix(prefix string) Option {
	return func(c *Config) error {
		c.APIPrefix = prefix
		return nil
	}
}

// WithAPITag overrides the derived API tag.
func WithAPITag(tag string) Option {
	return func(c *Config) error {
		c.APITag = tag
		return nil
	}
}

// WithTests records a request for test generation. Generation of tests is
// not implemented; the flag is only reported.
func WithTests(tests bool) Option {
	return func(c *Config) error {
		c.Tests = tests
		return nil
	}
}

// WithTemplateDir sets a directory of <kind>.tmpl files that replace the
// built-in renderers, e.g. "entity.tmpl" or "api_routes.tmpl".
func WithTemplateDir(dir string) Option {
	return func(c *Config) error {
		c.TemplateDir = dir
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}
