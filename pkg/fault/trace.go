package fault

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is a single call site in a captured trace.
type Frame struct {
	// File is the source file path as reported by the runtime.
	File string
	// Line is the line number.
	Line int
	// Function is the fully-qualified function name.
	Function string
}

// String renders the frame in the conventional "function\n\tfile:line" form.
func (f Frame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// Trace is an ordered sequence of frames, most recent call first.
type Trace []Frame

// maxTraceDepth bounds capture work on exceptional paths.
const maxTraceDepth = 64

// CaptureTrace records the current goroutine's stack, skipping skip frames
// above the caller. A skip of zero starts at the caller of CaptureTrace.
func CaptureTrace(skip int) Trace {
	pc := make([]uintptr, maxTraceDepth)
	// +2 skips runtime.Callers and CaptureTrace itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make(Trace, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// String renders the trace as plain text, one frame per line pair.
func (t Trace) String() string {
	if len(t) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range t {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}
