// Package diag defines the diagnostic model shared by the lexer, the parser
// and the semantic passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go):
//     LEX1xxx, SYN2xxx, SEM3xxx, IO4xxx, PRJ5xxx.
//   - Message – short, human oriented text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans ("declared here").
//
// # Emitting diagnostics
//
// Phases report through a Reporter and never format anything themselves.
// BagReporter collects into a Bag, which supports sorting, deduplication,
// filtering and transformation (for example promoting warnings to errors).
//
// # Consumers
//
//   - internal/diagfmt renders diagnostics (pretty, short, json).
//   - internal/driver collects one Bag per analysed file.
//
// Package diag does not perform any formatting beyond the golden/short
// representation in golden.go, which tests rely on.
package diag
