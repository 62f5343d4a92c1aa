package chain

import "github.com/relicta-tech/faultline/pkg/fault"

// Protect wraps fn so that a panic inside it is captured, dispatched through
// the hook, and absorbed. The guarded function returns fn's own error when no
// panic occurred and nil when a panic was absorbed; callers wrap risky
// operations explicitly rather than relying on an ambient process hook.
func (h *Hook) Protect(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				h.Dispatch(fault.CapturePanic(v))
				err = nil
			}
		}()
		return fn()
	}
}

// Go runs fn on a new goroutine guarded by the hook, so a panic in the
// goroutine is reported through the chain instead of crashing the process.
func (h *Hook) Go(fn func()) {
	go func() {
		defer h.Recover()
		fn()
	}()
}
