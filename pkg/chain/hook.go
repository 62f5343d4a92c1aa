package chain

import (
	"fmt"
	"os"

	"github.com/relicta-tech/faultline/pkg/fault"
)

// Hook is the explicitly constructed installation point for uncaught-fault
// handling: it bundles the active chain, the fallback sink, and the
// pass-through action that stands in for the platform default behavior.
// Build one at startup, hold it for the process lifetime, and tear it down
// at shutdown; there is no hidden package-level state.
type Hook struct {
	chain    Plugin
	fb       FallbackSink
	passthru func(*fault.Report)
}

// HookOption configures a Hook.
type HookOption func(*Hook)

// WithHookFallback replaces the stderr fallback sink.
func WithHookFallback(fb FallbackSink) HookOption {
	return func(h *Hook) {
		if fb != nil {
			h.fb = fb
		}
	}
}

// WithPassthrough sets the action run when the chain elects to pass through
// (returns true). Passing nil disables pass-through entirely.
func WithPassthrough(fn func(*fault.Report)) HookOption {
	return func(h *Hook) { h.passthru = fn }
}

// NewHook creates a hook around the given chain. The default pass-through
// dumps the raw report to stderr, so a fault is never lost silently.
func NewHook(root Plugin, opts ...HookOption) *Hook {
	h := &Hook{
		chain:    root,
		fb:       stderrFallback(),
		passthru: dumpToStderr,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Dispatch runs one fault occurrence through the chain and returns the
// chain's continue signal. A nil report is resolved to an empty unknown
// fault before any plugin sees it. When the chain passes through and a
// pass-through action is configured, it runs exactly once, after the chain.
func (h *Hook) Dispatch(rep *fault.Report) bool {
	if rep == nil {
		rep = fault.New(nil, nil, nil)
	}
	cont := true
	if h.chain != nil {
		cont = protectedHandle(h.chain, rep, h.fb)
	}
	if cont && h.passthru != nil {
		h.passthru(rep)
	}
	return cont
}

// Recover is the deferred entry point: it recovers an in-flight panic,
// captures it, and dispatches it through the chain.
//
//	defer hook.Recover()
func (h *Hook) Recover() {
	if v := recover(); v != nil {
		h.Dispatch(fault.CapturePanic(v))
	}
}

// dumpToStderr is the platform-default analogue: the raw fault and trace go
// to the standard error stream.
func dumpToStderr(rep *fault.Report) {
	fmt.Fprintf(os.Stderr, "faultline: unhandled %s fault: %s\n", rep.Kind().Name(), rep.Message())
	if tr := rep.Trace(); tr != nil {
		fmt.Fprint(os.Stderr, tr.String())
	}
}
