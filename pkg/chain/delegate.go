package chain

import "github.com/relicta-tech/faultline/pkg/fault"

// Delegate composes a plugin with its successor: after p's own Handle
// returns, a truthy result forwards the report to next and the delegate's
// result replaces p's. A falsy result vetoes further processing. A nil next
// makes Delegate(p, nil) behave exactly like p under panic isolation.
func Delegate(p, next Plugin, opts ...Option) Plugin {
	o := buildOptions(opts)
	return &delegating{p: p, next: next, fb: o.fallback}
}

type delegating struct {
	p    Plugin
	next Plugin
	fb   FallbackSink
}

func (d *delegating) Name() string { return d.p.Name() }

func (d *delegating) Handle(rep *fault.Report) bool {
	cont := protectedHandle(d.p, rep, d.fb)
	if cont && d.next != nil {
		return protectedHandle(d.next, rep, d.fb)
	}
	return cont
}
