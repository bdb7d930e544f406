// Package sema runs the semantic passes over a parsed tree.
//
// The pipeline is fixed: link fixup, declarator creation, call checking,
// result types, type checking, then the unused-result and unreachable-code
// warnings. The first error aborts the run:
//
//   - *SemanticError: the program is ill-formed (errors.Is ErrSemantic);
//   - *InternalError: an earlier pass's guarantee did not hold (errors.Is ErrInternal).
//
// Warnings never abort; they accumulate in Result.Bag next to the error.
package sema
