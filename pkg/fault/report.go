package fault

import (
	"time"

	"github.com/google/uuid"
)

// Cause is one entry in a structured multi-cause fault value, as reported by
// device-style errors: a trace-like origin, a machine-readable reason code,
// and a human-readable description.
type Cause struct {
	Origin      string
	Reason      string
	Description string
}

// Value is the payload of a captured fault: a message plus optional ordered
// causes for structured errors.
type Value struct {
	Message string
	Causes  []Cause
}

// Report is the immutable record of one fault occurrence. It is produced once
// at capture time and consumed read-only by every plugin and formatter in the
// chain; accessors copy mutable state so handlers cannot alter it.
type Report struct {
	id       string
	kind     *Kind
	value    *Value
	trace    Trace
	captured time.Time
}

// New creates a report for the given kind, value, and trace. A nil kind is
// recorded as KindUnknown. Value and trace may be nil; formatters are required
// to tolerate that.
func New(kind *Kind, value *Value, trace Trace) *Report {
	if kind == nil {
		kind = KindUnknown
	}
	var v *Value
	if value != nil {
		cp := Value{Message: value.Message}
		if len(value.Causes) > 0 {
			cp.Causes = append([]Cause(nil), value.Causes...)
		}
		v = &cp
	}
	var t Trace
	if len(trace) > 0 {
		t = append(Trace(nil), trace...)
	}
	return &Report{
		id:       uuid.NewString(),
		kind:     kind,
		value:    v,
		trace:    t,
		captured: time.Now(),
	}
}

// ID returns the unique identifier of this occurrence.
func (r *Report) ID() string { return r.id }

// Kind returns the fault's kind. Never nil.
func (r *Report) Kind() *Kind { return r.kind }

// Message returns the fault message, or "" when no value was captured.
func (r *Report) Message() string {
	if r.value == nil {
		return ""
	}
	return r.value.Message
}

// HasValue reports whether a value was captured.
func (r *Report) HasValue() bool { return r.value != nil }

// Causes returns a copy of the structured causes, or nil.
func (r *Report) Causes() []Cause {
	if r.value == nil || len(r.value.Causes) == 0 {
		return nil
	}
	return append([]Cause(nil), r.value.Causes...)
}

// Trace returns a copy of the captured trace, or nil.
func (r *Report) Trace() Trace {
	if len(r.trace) == 0 {
		return nil
	}
	return append(Trace(nil), r.trace...)
}

// CapturedAt returns the capture timestamp.
func (r *Report) CapturedAt() time.Time { return r.captured }
