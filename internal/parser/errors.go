package parser

import (
	"errors"

	"nut/internal/diag"
)

// ErrSyntax is matched by every *Error.
var ErrSyntax = errors.New("syntax error")

// Error is the first lexical or syntax diagnostic of a file. Parsing stops
// at the first error, so there is never more than one.
type Error struct {
	Diag diag.Diagnostic
}

func (e *Error) Error() string {
	return "parse error: " + e.Diag.Message
}

func (e *Error) Unwrap() error { return ErrSyntax }

// firstError forwards diagnostics and remembers the first error among them.
type firstError struct {
	out   diag.Reporter
	first *diag.Diagnostic
}

func (r *firstError) Report(d diag.Diagnostic) {
	if d.Severity == diag.SevError && r.first == nil {
		r.first = &d
	}
	if r.out != nil {
		r.out.Report(d)
	}
}
