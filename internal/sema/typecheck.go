package sema

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/types"
)

// TypeCheckPass enforces the typing rules that need result types:
// noncopyable variables, initializers, call arguments and returns.
type TypeCheckPass struct{}

func (TypeCheckPass) Name() string { return "typecheck" }

func (TypeCheckPass) Run(c *Context) error {
	return typeCheck(c, c.Root)
}

func typeCheck(c *Context, id ast.NodeID) error {
	n, err := c.node(id)
	if err != nil {
		return err
	}

	switch n.Kind {
	case ast.DeclarationStmt, ast.Argument:
		if err := checkVariable(c, id, n); err != nil {
			return err
		}
	case ast.FunctionCallExpr:
		if err := checkArguments(c, id, n); err != nil {
			return err
		}
	case ast.ReturnStmt:
		if err := checkReturn(c, id, n); err != nil {
			return err
		}
	}

	for _, cid := range n.Children {
		if err := typeCheck(c, cid); err != nil {
			return err
		}
	}
	return nil
}

func checkVariable(c *Context, id ast.NodeID, n *ast.Node) error {
	v, ok := n.Decl.(*types.Variable)
	if !ok || v.Type == nil {
		return c.internal(id, "%s '%s' has no variable declarator", n.Kind, n.Name)
	}
	if v.Type.Noncopyable() {
		return c.fail(diag.SemaDeclaredVoid, id, "'%s' declared void", v.Name)
	}
	if n.Kind != ast.DeclarationStmt || len(n.Children) < 2 {
		return nil
	}
	init := c.Tree.Get(n.Child(1))
	if !types.Same(v.Type, init.Type) {
		return c.fail(diag.SemaInitializerMismatch, id,
			"incompatible initializer for '%s': expected '%s', got '%s'", v.Name, v.Type, init.Type)
	}
	return nil
}

func checkArguments(c *Context, id ast.NodeID, n *ast.Node) error {
	fn, err := callee(c, id, n)
	if err != nil {
		return err
	}
	for i, aid := range c.Tree.CallArgs(id) {
		if i >= len(fn.Params) {
			return c.internal(id, "call to '%s' has more arguments than parameters", fn.Name)
		}
		want, got := fn.Params[i].Type, c.Tree.Get(aid).Type
		if !types.Same(want, got) {
			return c.fail(diag.SemaArgumentMismatch, aid,
				"incompatible type for argument %d of '%s': expected '%s', got '%s'", i+1, fn.Name, want, got)
		}
	}
	return nil
}

func checkReturn(c *Context, id ast.NodeID, n *ast.Node) error {
	fnNode := c.Tree.Get(c.Tree.EnclosingFunction(id))
	if fnNode == nil {
		return c.internal(id, "return outside of a function")
	}
	fn, ok := fnNode.Decl.(*types.Function)
	if !ok || fn.Return == nil {
		return c.internal(id, "enclosing function has no declarator")
	}

	got := c.Builtins.Void()
	if len(n.Children) > 0 {
		if got = c.Tree.Get(n.Child(0)).Type; got == nil {
			return c.internal(id, "returned expression has no result type")
		}
	}
	want := fn.Return

	switch {
	case got.Noncopyable() && !want.Noncopyable():
		return c.fail(diag.SemaReturnExpectsValue, id, "this function expects a return value")
	case !got.Noncopyable() && want.Noncopyable():
		return c.fail(diag.SemaReturnUnexpectedValue, id, "this function does not expect a return value")
	case !types.Same(got, want):
		return c.fail(diag.SemaReturnMismatch, id, "returning with incompatible type: expected '%s', got '%s'", want, got)
	}
	return nil
}
