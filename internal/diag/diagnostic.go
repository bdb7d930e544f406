package diag

import (
	"slices"

	"nut/internal/source"
)

// Note attaches secondary context to a diagnostic. A zero span means the
// note is not tied to source text (timings payloads, hints).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one problem reported against a span of source.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, at source.Span, msg string) Diagnostic   { return New(SevError, code, at, msg) }
func NewWarning(code Code, at source.Span, msg string) Diagnostic { return New(SevWarning, code, at, msg) }

// WithNote returns a copy of d with one more note; d itself is unchanged.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

// Blocking reports whether d fails a check run.
func (d Diagnostic) Blocking(warningsAsErrors bool) bool {
	return d.Severity >= SevError || warningsAsErrors && d.Severity >= SevWarning
}
