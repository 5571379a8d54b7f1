// Package coerce converts raw cell text into typed JSON values according to
// a column's type tag.
package coerce

import (
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Built-in type tags.
const (
	TagInt   = "int"
	TagFloat = "float"
)

var (
	// ErrCoercion indicates cell text that does not parse as the declared type.
	ErrCoercion = errors.New("coercion failed")
	// ErrMissingValue indicates a typed column with no cell text.
	ErrMissingValue = errors.New("missing value")
)

// Func converts raw cell text into a JSON-encodable value.
type Func func(raw string) (any, error)

// Registry maps type tags to coercion functions. Tags without an entry pass
// the raw text through unchanged. A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Default returns a registry with the "int" and "float" coercions.
func Default() *Registry {
	r := NewRegistry()
	r.Register(TagInt, parseInt)
	r.Register(TagFloat, parseFloat)
	return r
}

// Register installs fn for tag, replacing any previous entry.
func (r *Registry) Register(tag string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[tag] = fn
}

// Lookup reports whether tag has a registered coercion.
func (r *Registry) Lookup(tag string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[tag]
	return fn, ok
}

// Coerce converts raw according to tag. set is false for an unset cell:
// registered tags reject it with ErrMissingValue, other tags yield nil.
func (r *Registry) Coerce(tag, raw string, set bool) (any, error) {
	fn, ok := r.Lookup(tag)
	if !ok {
		if !set {
			return nil, nil
		}
		return raw, nil
	}
	if !set {
		return nil, ErrMissingValue
	}
	return fn(raw)
}

func parseInt(raw string) (any, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse %q as int", raw), ErrCoercion)
	}
	return v, nil
}

func parseFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse %q as float", raw), ErrCoercion)
	}
	return v, nil
}
