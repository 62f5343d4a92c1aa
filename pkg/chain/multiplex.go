package chain

import "github.com/relicta-tech/faultline/pkg/fault"

// Multiplex fans a fault out to an ordered list of child plugins. The first
// child that returns false claims the fault: children after it are not
// invoked and the multiplex returns false. It returns true only when every
// child returned true — a short-circuiting AND over child results.
type Multiplex struct {
	name     string
	children []Plugin
	fb       FallbackSink
}

// NewMultiplex creates an empty multiplex plugin.
func NewMultiplex(name string, opts ...Option) *Multiplex {
	o := buildOptions(opts)
	return &Multiplex{name: name, fb: o.fallback}
}

// Append adds children to the end of the fan-out order.
func (m *Multiplex) Append(children ...Plugin) *Multiplex {
	m.children = append(m.children, children...)
	return m
}

// Name implements Plugin.
func (m *Multiplex) Name() string { return m.name }

// Handle implements Plugin.
func (m *Multiplex) Handle(rep *fault.Report) bool {
	for _, c := range m.children {
		if !protectedHandle(c, rep, m.fb) {
			return false
		}
	}
	return true
}
