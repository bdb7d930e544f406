package diag

import "nut/internal/source"

// Reporter принимает диагностики от лексера, парсера и sema.
type Reporter interface {
	Report(d Diagnostic)
}

// Emit builds a diagnostic, hands it to r (nil is allowed) and returns it.
func Emit(r Reporter, sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	d := New(sev, code, primary, msg)
	if r != nil {
		r.Report(d)
	}
	return d
}

// ReportError emits an error; see Emit.
func ReportError(r Reporter, code Code, primary source.Span, msg string) Diagnostic {
	return Emit(r, SevError, code, primary, msg)
}

// ReportWarning emits a warning; see Emit.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) Diagnostic {
	return Emit(r, SevWarning, code, primary, msg)
}

// BagReporter adds to Bag; the bag limit applies.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// MultiReporter forwards to every non-nil element.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// ReporterFunc adapts a function.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }
