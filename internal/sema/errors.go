package sema

import (
	"errors"
	"fmt"

	"nut/internal/ast"
	"nut/internal/diag"
)

var (
	// ErrSemantic matches every *SemanticError: the program was rejected.
	ErrSemantic = errors.New("semantic error")
	// ErrInternal matches every *InternalError: the analyzer is broken.
	ErrInternal = errors.New("internal compiler error")
)

// SemanticError is the fatal diagnostic that aborted the pipeline.
type SemanticError struct {
	Diag diag.Diagnostic
}

func (e *SemanticError) Error() string { return "semantic error: " + e.Diag.Message }

func (e *SemanticError) Unwrap() error { return ErrSemantic }

// InternalError reports a broken precondition, e.g. a name that an earlier
// pass proved resolvable no longer resolves. Never caused by user input
// that went through the parser.
type InternalError struct {
	Pass string
	Node ast.NodeID
	Msg  string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error: %s: %s (node %d)", e.Pass, e.Msg, e.Node)
}

func (e *InternalError) Unwrap() error { return ErrInternal }
