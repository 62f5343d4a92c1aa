// Package format renders captured faults into human-readable title, summary,
// detail, and origin markup. The registry maps error kinds to formatters
// using an ordered first-ancestor-match scan.
package format

import (
	"sync"

	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/highlight"
)

// Formatter produces the four display fields for one fault occurrence. Every
// producer must tolerate a nil report and reports without value or trace.
type Formatter interface {
	Title(*fault.Report) string
	Summary(*fault.Report) string
	Detail(*fault.Report) string
	Origin(*fault.Report) string
}

// Factory builds a formatter bound to a highlighting capability.
type Factory func(highlight.Highlighter) Formatter

type entry struct {
	kind    *fault.Kind
	factory Factory
}

// Registry holds the ordered kind-to-formatter mapping. It is safe for
// concurrent use; registration normally happens once at startup while
// resolution runs on every fault occurrence.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	hl      highlight.Highlighter
	deflt   Factory
}

// Option configures a Registry.
type Option func(*Registry)

// WithHighlighter injects the highlighting capability handed to formatters.
// When absent, formatters receive the plain-text implementation.
func WithHighlighter(h highlight.Highlighter) Option {
	return func(r *Registry) {
		if h != nil {
			r.hl = h
		}
	}
}

// WithDefault overrides the fallback formatter used for unregistered kinds.
func WithDefault(f Factory) Option {
	return func(r *Registry) {
		if f != nil {
			r.deflt = f
		}
	}
}

// NewRegistry creates a registry with the Default formatter as fallback.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		hl:    highlight.Plain{},
		deflt: NewDefault,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register maps a kind to a formatter factory. Registering an already-mapped
// kind overwrites the factory in place, keeping the kind's original position
// in the scan order. A nil kind or factory is ignored.
func (r *Registry) Register(kind *fault.Kind, f Factory) {
	if kind == nil || f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].kind == kind {
			r.entries[i].factory = f
			return
		}
	}
	r.entries = append(r.entries, entry{kind: kind, factory: f})
}

// Resolve returns the factory of the first registered entry whose kind is an
// ancestor of (or equal to) the queried kind, falling back to the default.
//
// The scan is deliberately first-match-wins in registration order, not
// most-specific-wins: when several registered kinds are ancestors of the
// queried kind, whichever was registered first takes precedence. Callers that
// care about precedence must order their registrations accordingly.
func (r *Registry) Resolve(kind *fault.Kind) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if kind.Is(e.kind) {
			return e.factory
		}
	}
	return r.deflt
}

// Highlighter returns the capability handed to formatters.
func (r *Registry) Highlighter() highlight.Highlighter {
	return r.hl
}
