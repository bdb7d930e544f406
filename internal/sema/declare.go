package sema

import (
	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/symbols"
	"nut/internal/types"
)

// DeclarePass attaches declarators in pre-order. A declared type name is
// resolved at the declaring node before the declarator is attached, so a
// name can never denote its own type.
//
// When the resolver is a symbols.ScopeBuilder, it is fed in lockstep: every
// node is marked with what is visible when it is reached, functions open a
// function scope for their parameters, and blocks open a block scope.
type DeclarePass struct{}

func (DeclarePass) Name() string { return "declare" }

func (DeclarePass) Run(c *Context) error {
	sb, _ := c.Resolver.(symbols.ScopeBuilder)
	d := declarer{c: c, sb: sb}
	return d.visit(c.Root)
}

type declarer struct {
	c  *Context
	sb symbols.ScopeBuilder // nil for resolvers that read the tree directly
}

func (d *declarer) visit(id ast.NodeID) error {
	n, err := d.c.node(id)
	if err != nil {
		return err
	}
	if d.sb != nil {
		d.sb.Mark(id)
	}

	switch n.Kind {
	case ast.FunctionDecl:
		fn, err := d.function(id, n)
		if err != nil {
			return err
		}
		n.Decl = fn
		d.declare(fn.Name, fn, id)
		return d.children(n, symbols.ScopeFunction, id)

	case ast.Argument, ast.DeclarationStmt:
		t, err := d.resolveType(id, n)
		if err != nil {
			return err
		}
		v := types.NewVariable(n.Name)
		v.Type = t
		n.Decl = v
		d.declare(v.Name, v, id)
		return d.children(n, symbols.ScopeInvalid, id)

	case ast.StatementBlock:
		return d.children(n, symbols.ScopeBlock, id)

	default:
		return d.children(n, symbols.ScopeInvalid, id)
	}
}

// children visits n's children, inside a new scope unless kind is ScopeInvalid.
func (d *declarer) children(n *ast.Node, kind symbols.ScopeKind, owner ast.NodeID) error {
	if kind != symbols.ScopeInvalid && d.sb != nil {
		d.sb.Enter(kind, owner)
		defer d.sb.Leave()
	}
	for _, cid := range n.Children {
		if err := d.visit(cid); err != nil {
			return err
		}
	}
	return nil
}

func (d *declarer) declare(name string, decl types.Declarator, node ast.NodeID) {
	if d.sb != nil {
		d.sb.Declare(name, decl, node)
	}
}

func (d *declarer) function(id ast.NodeID, n *ast.Node) (*types.Function, error) {
	ret, err := d.resolveType(id, n)
	if err != nil {
		return nil, err
	}
	fn := types.NewFunction(n.Name)
	fn.Return = ret

	list, err := d.c.node(n.Child(1))
	if err != nil {
		return nil, err
	}
	for _, aid := range list.Children {
		arg, err := d.c.node(aid)
		if err != nil {
			return nil, err
		}
		// parameter types are looked up from the function node
		t, err := d.resolveType(id, arg)
		if err != nil {
			return nil, err
		}
		p := types.NewVariable(arg.Name)
		p.Type = t
		fn.AddParam(p)
	}
	return fn, nil
}

// resolveType resolves the type named by n's TypeSpecifier child, looking it up at at.
func (d *declarer) resolveType(at ast.NodeID, n *ast.Node) (*types.Type, error) {
	spec, err := d.c.node(n.Child(0))
	if err != nil {
		return nil, err
	}
	if spec.Kind != ast.TypeSpecifier {
		return nil, d.c.internal(n.Child(0), "expected TypeSpecifier, found %s", spec.Kind)
	}
	decl, ok := d.c.Resolve(spec.Name, at)
	t, isType := decl.(*types.Type)
	if !ok || !isType {
		return nil, d.c.fail(diag.SemaUnresolvedType, n.Child(0), "'%s' does not name a type", spec.Name)
	}
	return t, nil
}
