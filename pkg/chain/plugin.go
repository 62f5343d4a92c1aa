// Package chain implements the composable handler pipeline invoked for every
// uncaught fault: delegating plugins, the fan-out multiplexer, the logging
// and notification plugins, and the Hook that installs them.
package chain

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/relicta-tech/faultline/pkg/fault"
)

// Plugin is a named fault handler. Handle returns true when processing should
// continue to the next plugin or the platform default action, and false when
// the fault was fully handled and nothing downstream needs to run.
type Plugin interface {
	Name() string
	Handle(*fault.Report) bool
}

// FallbackSink is the last-resort output used when a plugin itself breaks or
// when delivery fails. It must not be able to fail.
type FallbackSink interface {
	// Fault records that the named plugin panicked while handling a report.
	Fault(plugin string, recovered any)
	// Warn records a non-fatal reporting problem, such as a delivery error.
	Warn(plugin string, err error)
}

// NewWriterFallback creates a fallback sink that writes to w, typically
// os.Stderr. Writes are serialized; write errors are ignored.
func NewWriterFallback(w io.Writer) FallbackSink {
	return &writerFallback{w: w}
}

func stderrFallback() FallbackSink { return NewWriterFallback(os.Stderr) }

type writerFallback struct {
	mu sync.Mutex
	w  io.Writer
}

func (f *writerFallback) Fault(plugin string, recovered any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.w, "faultline: plugin %q panicked: %v\n%s", plugin, recovered, debug.Stack())
}

func (f *writerFallback) Warn(plugin string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.w, "faultline: plugin %q: %v\n", plugin, err)
}

// protectedHandle invokes one plugin under panic isolation. A broken handler
// must never crash the process it protects: the panic goes once to the
// fallback sink and the plugin is treated as having returned true so the
// chain continues.
func protectedHandle(p Plugin, rep *fault.Report, fb FallbackSink) (cont bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if fb != nil {
				fb.Fault(p.Name(), rec)
			}
			cont = true
		}
	}()
	return p.Handle(rep)
}

// Option configures chain composites.
type Option func(*options)

type options struct {
	fallback FallbackSink
}

// WithFallback replaces the stderr fallback sink.
func WithFallback(fb FallbackSink) Option {
	return func(o *options) {
		if fb != nil {
			o.fallback = fb
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{fallback: stderrFallback()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
