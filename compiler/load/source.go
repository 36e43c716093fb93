package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned (wrapped) by sources that cannot locate the
// requested entity under any of their lookup conventions.
var ErrNotFound = errors.New("load: entity not found")

// Source is the system of record for entity structure.
type Source interface {
	// Describe returns the schema of the named entity. Implementations
	// return an error wrapping ErrNotFound if the entity cannot be located.
	Describe(ctx context.Context, entity string) (*Schema, error)
}

// SourceFunc is an adapter to allow the use of ordinary functions as sources.
type SourceFunc func(context.Context, string) (*Schema, error)

// Describe calls f(ctx, entity).
func (f SourceFunc) Describe(ctx context.Context, entity string) (*Schema, error) {
	return f(ctx, entity)
}

// Opener opens a source for a locator of a registered scheme.
type Opener func(ctx context.Context, locator string) (Source, error)

var (
	openersMu sync.RWMutex
	openers   = make(map[string]Opener)
)

// Register makes a source opener available for locators of the form
// "<scheme>://...". It panics if Register is called twice for the same
// scheme or if opener is nil.
func Register(scheme string, opener Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	if opener == nil {
		panic("load: Register opener is nil")
	}
	if _, dup := openers[scheme]; dup {
		panic("load: Register called twice for scheme " + scheme)
	}
	openers[scheme] = opener
}

// Schemes returns a sorted list of the registered locator schemes.
func Schemes() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()
	schemes := make([]string, 0, len(openers))
	for s := range openers {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Open returns the source addressed by locator:
//
//   - "" opens the file source rooted at DefaultDir.
//   - "<scheme>://..." opens the source registered for the scheme.
//   - a directory opens a file source rooted at it.
//   - a file opens a single-file source.
func Open(ctx context.Context, locator string) (Source, error) {
	if locator == "" {
		return NewFileSource(DefaultDir), nil
	}
	if scheme, _, ok := strings.Cut(locator, "://"); ok {
		openersMu.RLock()
		opener, found := openers[scheme]
		openersMu.RUnlock()
		if !found {
			return nil, fmt.Errorf("load: unknown source scheme %q (registered: %s)", scheme, strings.Join(Schemes(), ", "))
		}
		return opener(ctx, locator)
	}
	info, err := os.Stat(locator)
	if err != nil {
		return nil, fmt.Errorf("load: open source %q: %w", locator, err)
	}
	if info.IsDir() {
		return NewFileSource(locator), nil
	}
	return NewFileSource(locator).Single(), nil
}

// Close closes the source if it holds resources.
func Close(s Source) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
