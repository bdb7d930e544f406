package sema

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/types"
)

// UnusedResultPass warns about expression statements whose value is
// dropped. The only exemption is a call to a function returning a
// noncopyable type: it has no value to drop.
type UnusedResultPass struct{}

func (UnusedResultPass) Name() string { return "unused" }

func (UnusedResultPass) Run(c *Context) error {
	c.Tree.Walk(c.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind != ast.Statement {
			return true
		}
		wrap := c.Tree.Get(n.Child(0))
		if wrap == nil || wrap.Kind != ast.ExprWrapper {
			return true
		}
		if !discardsValue(c, wrap.Child(0)) {
			c.warn(diag.SemaUnusedResult, id, "unused expression result")
		}
		return true
	})
	return nil
}

// discardsValue reports whether id is a call to a noncopyable-returning
// function, possibly parenthesized.
func discardsValue(c *Context, id ast.NodeID) bool {
	n := c.Tree.Get(id)
	for n != nil && n.Kind == ast.ExprWrapper {
		id = n.Child(0)
		n = c.Tree.Get(id)
	}
	if n == nil {
		return false
	}
	if n.Kind != ast.FunctionCallExpr {
		return false
	}
	ident := c.Tree.Get(n.Child(0))
	if ident == nil {
		return false
	}
	decl, ok := c.Resolve(ident.Name, n.Child(0))
	if !ok {
		return false
	}
	fn, ok := decl.(*types.Function)
	return ok && fn.Return.Noncopyable()
}

// UnreachablePass warns about a return that is not the last statement of
// its block.
type UnreachablePass struct{}

func (UnreachablePass) Name() string { return "unreachable" }

func (UnreachablePass) Run(c *Context) error {
	c.Tree.Walk(c.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind != ast.ReturnStmt {
			return true
		}
		if stmt := c.Tree.Get(n.Parent); stmt != nil && stmt.Next != ast.NoNodeID {
			c.warn(diag.SemaUnreachableCode, id, "unreachable code after return")
		}
		return false
	})
	return nil
}
