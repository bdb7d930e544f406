package sema

import (
	"nut/internal/diag"
	"nut/internal/observ"
	"nut/internal/symbols"
	"nut/internal/types"
)

// Options configure one pipeline run.
type Options struct {
	Resolver symbols.Kind    // "" selects symbols.KindScope
	Builtins *types.Builtins // nil selects types.Default()
	Reporter diag.Reporter   // additionally receives every diagnostic; may be nil
	// DisableWarnings drops warnings by code before they are reported.
	DisableWarnings map[diag.Code]bool
	// MaxDiagnostics caps Result.Bag; 0 means 100.
	MaxDiagnostics int
	Timer          *observ.Timer // records one phase per pass when set
}

// Result holds what a run produced. On a fatal error it still carries the
// warnings collected so far plus the error diagnostic.
type Result struct {
	Bag      *diag.Bag
	Resolver symbols.Resolver
	Passes   []string // names of the passes that completed
}
