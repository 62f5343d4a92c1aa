// Package fault defines the data model for captured faults: the error-kind
// hierarchy, stack traces, and the immutable Report handed to plugins and
// formatters.
package fault

// Kind identifies the category of a captured fault. Kinds form an explicit
// hierarchy via parent pointers; no reflection or type introspection is
// involved in matching.
type Kind struct {
	name   string
	parent *Kind
}

// NewKind creates a kind with the given name and optional parent.
// A nil parent makes the kind a hierarchy root.
func NewKind(name string, parent *Kind) *Kind {
	return &Kind{name: name, parent: parent}
}

// Name returns the kind's identifier.
func (k *Kind) Name() string {
	if k == nil {
		return "unknown"
	}
	return k.name
}

// Parent returns the kind's parent, or nil for a root kind.
func (k *Kind) Parent() *Kind {
	if k == nil {
		return nil
	}
	return k.parent
}

// Is reports whether ancestor is equal to k or appears on k's parent chain.
// It is reflexive; a nil ancestor never matches.
func (k *Kind) Is(ancestor *Kind) bool {
	if ancestor == nil {
		return false
	}
	for cur := k; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Built-in kinds. Applications extend the hierarchy with NewKind, typically
// parenting their own kinds under one of these.
var (
	// KindUnknown is the kind of faults that could not be classified.
	KindUnknown = NewKind("unknown", nil)
	// KindRuntime covers faults originating in the runtime itself.
	KindRuntime = NewKind("runtime", nil)
	// KindPanic is a recovered panic.
	KindPanic = NewKind("panic", KindRuntime)
	// KindIO covers input/output failures.
	KindIO = NewKind("io", nil)
	// KindNetwork covers network failures.
	KindNetwork = NewKind("network", KindIO)
	// KindTimeout is a deadline or timeout expiry.
	KindTimeout = NewKind("timeout", KindNetwork)
	// KindValidation covers rejected input.
	KindValidation = NewKind("validation", nil)
	// KindDevice covers structured multi-cause faults reported by external
	// devices or services, carrying an ordered list of causes.
	KindDevice = NewKind("device", nil)
)
