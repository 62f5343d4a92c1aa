package fault

import "testing"

func TestNewReportDefaults(t *testing.T) {
	rep := New(nil, nil, nil)

	if rep.Kind() != KindUnknown {
		t.Errorf("nil kind should default to KindUnknown, got %s", rep.Kind().Name())
	}
	if rep.HasValue() {
		t.Error("report without value should report HasValue false")
	}
	if rep.Message() != "" {
		t.Errorf("message = %q, want empty", rep.Message())
	}
	if rep.Causes() != nil {
		t.Error("causes should be nil")
	}
	if rep.Trace() != nil {
		t.Error("trace should be nil")
	}
	if rep.ID() == "" {
		t.Error("report must carry an occurrence id")
	}
	if rep.CapturedAt().IsZero() {
		t.Error("captured-at must be set")
	}
}

func TestReportImmutable(t *testing.T) {
	value := &Value{
		Message: "boom",
		Causes:  []Cause{{Reason: "RT_One", Description: "first"}},
	}
	trace := Trace{{File: "a.go", Line: 1, Function: "pkg.A"}}

	rep := New(KindDevice, value, trace)

	// Mutating the inputs after construction must not affect the report.
	value.Causes[0].Reason = "changed"
	trace[0].File = "changed.go"
	if rep.Causes()[0].Reason != "RT_One" {
		t.Error("report shares cause storage with its input")
	}
	if rep.Trace()[0].File != "a.go" {
		t.Error("report shares trace storage with its input")
	}

	// Mutating accessor results must not affect later reads.
	rep.Causes()[0].Description = "tampered"
	rep.Trace()[0].Line = 99
	if rep.Causes()[0].Description != "first" {
		t.Error("Causes() must return a copy")
	}
	if rep.Trace()[0].Line != 1 {
		t.Error("Trace() must return a copy")
	}
}

func TestReportIDsUnique(t *testing.T) {
	a := New(KindUnknown, nil, nil)
	b := New(KindUnknown, nil, nil)
	if a.ID() == b.ID() {
		t.Error("two occurrences must have distinct ids")
	}
}
