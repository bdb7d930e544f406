package sema

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/types"
)

// CallPass checks that every call names a function through an identifier
// and passes as many arguments as the function declares.
type CallPass struct{}

func (CallPass) Name() string { return "calls" }

func (CallPass) Run(c *Context) error {
	var err error
	c.Tree.Walk(c.Root, func(id ast.NodeID, n *ast.Node) bool {
		if err != nil {
			return false
		}
		if n.Kind == ast.FunctionCallExpr {
			err = checkCall(c, id, n)
		}
		return err == nil
	})
	return err
}

func checkCall(c *Context, id ast.NodeID, n *ast.Node) error {
	fn, err := callee(c, id, n)
	if err != nil {
		return err
	}
	given := len(c.Tree.CallArgs(id))
	if given != fn.Arity() {
		return c.fail(diag.SemaArityMismatch, id, "'%s' expects %d arguments (%d given)", fn.Name, fn.Arity(), given)
	}
	return nil
}

// callee resolves the function a call names. A callee that is not an
// identifier or not a function is the program's fault; one that does not
// resolve at all slipped past the parser.
func callee(c *Context, id ast.NodeID, n *ast.Node) (*types.Function, error) {
	ident := c.Tree.Get(n.Child(0))
	if ident == nil || ident.Kind != ast.IdentifierExpr {
		return nil, c.fail(diag.SemaCallOnNonIdentifier, id, "function calls are only supported on identifiers")
	}
	decl, ok := c.Resolve(ident.Name, n.Child(0))
	if !ok {
		return nil, c.internal(n.Child(0), "callee '%s' does not resolve", ident.Name)
	}
	fn, ok := decl.(*types.Function)
	if !ok {
		return nil, c.fail(diag.SemaNotAFunction, id, "'%s' is not a function", ident.Name)
	}
	return fn, nil
}
