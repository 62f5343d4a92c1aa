package chain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/faultline/pkg/fault"
)

// stubPlugin records invocations and returns a fixed result.
type stubPlugin struct {
	name   string
	result bool
	calls  int
	panics bool
}

func (s *stubPlugin) Name() string { return s.name }

func (s *stubPlugin) Handle(*fault.Report) bool {
	s.calls++
	if s.panics {
		panic("broken handler")
	}
	return s.result
}

// countingFallback records fallback notifications.
type countingFallback struct {
	mu     sync.Mutex
	faults []string
	warns  []error
}

func (c *countingFallback) Fault(plugin string, _ any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults = append(c.faults, plugin)
}

func (c *countingFallback) Warn(_ string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warns = append(c.warns, err)
}

func testReport() *fault.Report {
	return fault.New(fault.KindUnknown, &fault.Value{Message: "boom"}, nil)
}

func TestMultiplexAllTrue(t *testing.T) {
	p1 := &stubPlugin{name: "p1", result: true}
	p2 := &stubPlugin{name: "p2", result: true}
	m := NewMultiplex("root").Append(p1, p2)

	assert.True(t, m.Handle(testReport()))
	assert.Equal(t, 1, p1.calls)
	assert.Equal(t, 1, p2.calls)
}

func TestMultiplexShortCircuits(t *testing.T) {
	p1 := &stubPlugin{name: "p1", result: true}
	p2 := &stubPlugin{name: "p2", result: false}
	p3 := &stubPlugin{name: "p3", result: true}
	m := NewMultiplex("root").Append(p1, p2, p3)

	assert.False(t, m.Handle(testReport()))
	assert.Equal(t, 1, p1.calls)
	assert.Equal(t, 1, p2.calls)
	assert.Equal(t, 0, p3.calls, "children after the claiming child must not run")
}

func TestMultiplexEmpty(t *testing.T) {
	m := NewMultiplex("root")
	assert.True(t, m.Handle(testReport()))
}

func TestMultiplexPanickingChild(t *testing.T) {
	fb := &countingFallback{}
	p1 := &stubPlugin{name: "p1", panics: true}
	p2 := &stubPlugin{name: "p2", result: true}
	m := NewMultiplex("root", WithFallback(fb)).Append(p1, p2)

	// The chain still returns a boolean and continues past the broken
	// plugin as if it had returned true.
	assert.True(t, m.Handle(testReport()))
	assert.Equal(t, 1, p2.calls)
	require.Len(t, fb.faults, 1, "exactly one fault notification")
	assert.Equal(t, "p1", fb.faults[0])
}

func TestDelegateForwardsOnTrue(t *testing.T) {
	own := &stubPlugin{name: "own", result: true}
	next := &stubPlugin{name: "next", result: false}
	d := Delegate(own, next)

	assert.False(t, d.Handle(testReport()), "delegate's result replaces own result")
	assert.Equal(t, 1, own.calls)
	assert.Equal(t, 1, next.calls)
}

func TestDelegateVeto(t *testing.T) {
	own := &stubPlugin{name: "own", result: false}
	next := &stubPlugin{name: "next", result: true}
	d := Delegate(own, next)

	assert.False(t, d.Handle(testReport()))
	assert.Equal(t, 0, next.calls, "a falsy result vetoes the delegate")
}

func TestDelegateWithoutNext(t *testing.T) {
	own := &stubPlugin{name: "own", result: true}
	d := Delegate(own, nil)

	assert.True(t, d.Handle(testReport()))
}

func TestHookDispatchPassthroughRunsOnce(t *testing.T) {
	var passthru int
	p := &stubPlugin{name: "p", result: true}
	h := NewHook(p, WithPassthrough(func(*fault.Report) { passthru++ }))

	assert.True(t, h.Dispatch(testReport()))
	assert.Equal(t, 1, passthru)
}

func TestHookDispatchClaimedSkipsPassthrough(t *testing.T) {
	var passthru int
	p := &stubPlugin{name: "p", result: false}
	h := NewHook(p, WithPassthrough(func(*fault.Report) { passthru++ }))

	assert.False(t, h.Dispatch(testReport()))
	assert.Equal(t, 0, passthru, "a claimed fault must not reach the platform default")
}

func TestHookDispatchNilReport(t *testing.T) {
	var seen *fault.Report
	h := NewHook(pluginFunc(func(rep *fault.Report) bool {
		seen = rep
		return false
	}))

	h.Dispatch(nil)

	require.NotNil(t, seen, "plugins never see a nil report")
	assert.Equal(t, fault.KindUnknown, seen.Kind())
}

func TestHookDispatchPanickingChain(t *testing.T) {
	fb := &countingFallback{}
	p := &stubPlugin{name: "p", panics: true}
	h := NewHook(p, WithHookFallback(fb), WithPassthrough(nil))

	assert.True(t, h.Dispatch(testReport()), "a broken chain still yields a boolean")
	assert.Len(t, fb.faults, 1)
}

func TestHookProtectAbsorbsPanic(t *testing.T) {
	claimed := &stubPlugin{name: "p", result: false}
	h := NewHook(claimed, WithPassthrough(nil))

	guarded := h.Protect(func() error {
		panic("exploded")
	})

	assert.NoError(t, guarded())
	assert.Equal(t, 1, claimed.calls, "the panic was dispatched through the chain")
}

func TestHookProtectPassesErrorThrough(t *testing.T) {
	p := &stubPlugin{name: "p", result: false}
	h := NewHook(p, WithPassthrough(nil))

	sentinel := assert.AnError
	guarded := h.Protect(func() error { return sentinel })

	assert.ErrorIs(t, guarded(), sentinel)
	assert.Equal(t, 0, p.calls, "a returned error is not a fault")
}

func TestHookGoReportsGoroutinePanic(t *testing.T) {
	done := make(chan struct{})
	h := NewHook(pluginFunc(func(*fault.Report) bool {
		close(done)
		return false
	}), WithPassthrough(nil))

	h.Go(func() { panic("in goroutine") })

	<-done
}

// pluginFunc adapts a function to the Plugin interface for tests.
type pluginFunc func(*fault.Report) bool

func (pluginFunc) Name() string                    { return "func" }
func (f pluginFunc) Handle(rep *fault.Report) bool { return f(rep) }
