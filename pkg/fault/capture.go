package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
)

// Error is a kind-tagged error. Code that wants its faults classified and
// rendered by a specific formatter returns or panics with an *Error; Capture
// lifts the kind and causes into the report.
type Error struct {
	// Kind classifies the error. Nil means KindUnknown.
	Kind *Kind
	// Message is the human-readable error message.
	Message string
	// Causes optionally carries structured sub-causes.
	Causes []Cause
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Capture builds a report from an error, inferring the kind from the error's
// type and capturing the current stack. The caller's frame is the first one
// recorded. A nil error yields a valueless KindUnknown report.
func Capture(err error) *Report {
	return capture(err, 1)
}

// CapturePanic builds a report from a recovered panic value. Non-error values
// are stringified; the kind is KindPanic unless the value carries its own.
func CapturePanic(v any) *Report {
	if v == nil {
		return New(KindPanic, nil, CaptureTrace(1))
	}
	if err, ok := v.(error); ok {
		r := capture(err, 1)
		// Plain errors thrown through panic stay classified as panics.
		if r.kind == KindUnknown {
			r.kind = KindPanic
		}
		return r
	}
	return New(KindPanic, &Value{Message: fmt.Sprint(v)}, CaptureTrace(1))
}

func capture(err error, skip int) *Report {
	if err == nil {
		return New(KindUnknown, nil, CaptureTrace(skip+1))
	}
	value := &Value{Message: err.Error()}

	var fe *Error
	if errors.As(err, &fe) {
		if len(fe.Causes) > 0 {
			value.Causes = append([]Cause(nil), fe.Causes...)
		}
		return New(fe.Kind, value, CaptureTrace(skip+1))
	}
	return New(inferKind(err), value, CaptureTrace(skip+1))
}

// inferKind maps well-known error types onto the built-in hierarchy.
func inferKind(err error) *Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		return KindIO
	}
	var re runtime.Error
	if errors.As(err, &re) {
		return KindRuntime
	}
	return KindUnknown
}
