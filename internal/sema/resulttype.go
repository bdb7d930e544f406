package sema

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/types"
)

// ResultTypePass computes the result type of every expression bottom-up.
// Statements get no type. The callee identifier of a call names a function,
// not a value, and stays untyped as well.
type ResultTypePass struct{}

func (ResultTypePass) Name() string { return "types" }

func (ResultTypePass) Run(c *Context) error {
	_, err := resultType(c, c.Root)
	return err
}

// resultType returns the type of expression id, or nil for non-expressions
// after typing their children.
func resultType(c *Context, id ast.NodeID) (*types.Type, error) {
	n, err := c.node(id)
	if err != nil {
		return nil, err
	}

	var t *types.Type
	switch {
	case n.Kind == ast.ExprWrapper || n.Kind.IsUnary():
		if t, err = resultType(c, n.Child(0)); err != nil {
			return nil, err
		}

	case n.Kind == ast.IntegerLiteralExpr:
		t = c.Builtins.Int()

	case n.Kind == ast.FloatLiteralExpr:
		t = c.Builtins.Float()

	case n.Kind == ast.IdentifierExpr:
		if t, err = identType(c, id, n); err != nil {
			return nil, err
		}

	case n.Kind == ast.FunctionCallExpr:
		fn, err := callee(c, id, n)
		if err != nil {
			return nil, err
		}
		for _, arg := range n.Children[1:] {
			if _, err := resultType(c, arg); err != nil {
				return nil, err
			}
		}
		t = fn.Return

	case n.Kind == ast.ListExpr:
		// цепочка аргументов: тип списка равен типу его хвоста
		if _, err := resultType(c, n.Child(0)); err != nil {
			return nil, err
		}
		if t, err = resultType(c, n.Child(1)); err != nil {
			return nil, err
		}

	case n.Kind.IsBinary():
		lhs, err := resultType(c, n.Child(0))
		if err != nil {
			return nil, err
		}
		rhs, err := resultType(c, n.Child(1))
		if err != nil {
			return nil, err
		}
		if !types.Same(lhs, rhs) {
			return nil, c.fail(diag.SemaTypeMismatch, id, "incompatible types '%s' and '%s'", lhs, rhs)
		}
		t = lhs

	default:
		for _, cid := range n.Children {
			if _, err := resultType(c, cid); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	if t == nil {
		return nil, c.internal(id, "%s has no result type", n.Kind)
	}
	n.Type = t
	return t, nil
}

func identType(c *Context, id ast.NodeID, n *ast.Node) (*types.Type, error) {
	decl, ok := c.Resolve(n.Name, id)
	if !ok {
		return nil, c.internal(id, "identifier '%s' does not resolve", n.Name)
	}
	v, ok := decl.(*types.Variable)
	if !ok {
		return nil, c.fail(diag.SemaNotAValue, id, "'%s' is a %s, not a variable", n.Name, decl.DeclKind())
	}
	return v.Type, nil
}
