package format

import (
	"fmt"

	"github.com/relicta-tech/faultline/pkg/fault"
)

// Translation carries the four rendered display fields of one occurrence.
type Translation struct {
	Title   string
	Summary string
	Detail  string
	Origin  string
}

// Translate resolves the formatter for the report's kind and produces all
// four fields. It is a pure function of the report and the current registry
// state: translating the same report twice yields identical output.
//
// A panicking field producer degrades to a placeholder for that field; if
// every producer fails, the result is the minimal two-field summary of kind
// name and raw message.
func (r *Registry) Translate(rep *fault.Report) Translation {
	var kind *fault.Kind
	if rep != nil {
		kind = rep.Kind()
	}
	f := r.Resolve(kind)(r.hl)

	var failed int
	field := func(produce func(*fault.Report) string, placeholder string) string {
		out, ok := safeField(produce, rep)
		if !ok {
			failed++
			return placeholder
		}
		return out
	}

	t := Translation{
		Title:   field(f.Title, fallbackTitle(rep)),
		Summary: field(f.Summary, fallbackSummary(rep)),
		Detail:  field(f.Detail, ""),
		Origin:  field(f.Origin, ""),
	}
	if failed == 4 {
		return Translation{Title: fallbackTitle(rep), Summary: fallbackSummary(rep)}
	}
	return t
}

// safeField invokes one field producer, absorbing panics from malformed
// values so a broken formatter cannot take down the chain.
func safeField(produce func(*fault.Report) string, rep *fault.Report) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	return produce(rep), true
}

func fallbackTitle(rep *fault.Report) string {
	if rep == nil {
		return "Unhandled Error"
	}
	return fmt.Sprintf("Unhandled Error (%s)", rep.Kind().Name())
}

func fallbackSummary(rep *fault.Report) string {
	if rep == nil || !rep.HasValue() {
		return "Unhandled Error"
	}
	return rep.Message()
}
