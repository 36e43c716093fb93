package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of a generation run.
var (
	// ErrResolution indicates the entity could not be located.
	ErrResolution = errors.New("layergen: entity not resolved")
	// ErrIntrospection indicates the entity structure could not be normalized.
	ErrIntrospection = errors.New("layergen: introspection failed")
	// ErrConflict indicates an artifact file exists and overwriting was not enabled.
	ErrConflict = errors.New("layergen: artifact exists")
	// ErrRender indicates an artifact could not be rendered.
	ErrRender = errors.New("layergen: render failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("layergen: missing configuration")
)

// ResolutionError is returned when no schema source convention locates the
// requested entity.
type ResolutionError struct {
	Entity  string
	Locator string // Schema source locator, empty for the default source.
	Cause   error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("layergen: cannot resolve entity ")
	b.WriteString(e.Entity)
	if e.Locator != "" {
		fmt.Fprintf(&b, " (source %s)", e.Locator)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// IntrospectionError is returned when a located entity cannot be normalized
// into a descriptor, e.g. a column without any type information.
type IntrospectionError struct {
	Entity  string
	Column  string // Column name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *IntrospectionError) Error() string {
	var b strings.Builder
	b.WriteString("layergen: introspect entity ")
	b.WriteString(e.Entity)
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *IntrospectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for IntrospectionError.
func (e *IntrospectionError) Is(target error) bool {
	return target == ErrIntrospection
}

// ConflictError is returned when an artifact file already exists and the
// configuration does not allow overwriting it.
type ConflictError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("layergen: %s already exists (overwrite not enabled)", e.Path)
}

// Unwrap returns the underlying error.
func (e *ConflictError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RenderError is returned when an artifact cannot be rendered. It always
// indicates a mismatch between the descriptor and the renderer or template.
type RenderError struct {
	Entity string
	Kind   Kind
	Cause  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	msg := fmt.Sprintf("layergen: render %s %s", e.Entity, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("layergen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("layergen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsResolutionError reports if the error chain contains a ResolutionError.
func IsResolutionError(err error) bool {
	var e *ResolutionError
	return errors.As(err, &e)
}

// IsIntrospectionError reports if the error chain contains an IntrospectionError.
func IsIntrospectionError(err error) bool {
	var e *IntrospectionError
	return errors.As(err, &e)
}

// IsConflictError reports if the error chain contains a ConflictError.
func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsRenderError reports if the error chain contains a RenderError.
func IsRenderError(err error) bool {
	var e *RenderError
	return errors.As(err, &e)
}

// IsConfigError reports if the error chain contains a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
