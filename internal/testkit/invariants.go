package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nut/internal/ast"
	"nut/internal/source"
	"nut/internal/types"
)

// CheckSpanInvariants checks that every node of the tree points into sf
// with a well-formed span:
// 1) span.File is sf
// 2) Start <= End <= len(content)
func CheckSpanInvariants(tree *ast.Tree, root ast.NodeID, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var bad error
	tree.Walk(root, func(id ast.NodeID, n *ast.Node) bool {
		if bad != nil {
			return false
		}
		sp := n.Span
		switch {
		case sp.File != sf.ID:
			bad = fmt.Errorf("node %d (%s): span file mismatch: got=%d want=%d", id, n.Kind, sp.File, sf.ID)
		case sp.Start > sp.End:
			bad = fmt.Errorf("node %d (%s): inverted span %v", id, n.Kind, sp)
		case sp.End > lenContent:
			bad = fmt.Errorf("node %d (%s): span end beyond content: %d > %d", id, n.Kind, sp.End, lenContent)
		}
		return bad == nil
	})
	return bad
}

// CheckLinks verifies that Parent/Prev/Next agree with the children lists:
// for children [c0..cn] of p, ci.Parent == p, c0.Prev and cn.Next are empty,
// and ci.Prev/ci.Next are the neighbouring children.
func CheckLinks(tree *ast.Tree, root ast.NodeID) error {
	var bad error
	tree.Walk(root, func(id ast.NodeID, n *ast.Node) bool {
		if bad != nil {
			return false
		}
		for i, cid := range n.Children {
			c := tree.Get(cid)
			if c == nil {
				bad = fmt.Errorf("node %d: child %d is dangling", id, cid)
				return false
			}
			if c.Parent != id {
				bad = fmt.Errorf("node %d (%s): parent=%d want %d", cid, c.Kind, c.Parent, id)
			}
			if want := n.Child(i - 1); c.Prev != want {
				bad = fmt.Errorf("node %d (%s): prev=%d want %d", cid, c.Kind, c.Prev, want)
			}
			if want := n.Child(i + 1); c.Next != want {
				bad = fmt.Errorf("node %d (%s): next=%d want %d", cid, c.Kind, c.Next, want)
			}
			if bad != nil {
				return false
			}
		}
		return true
	})
	return bad
}

// CheckDeclarators verifies that every declaring node carries a declarator
// of the matching kind and that no other node carries one.
func CheckDeclarators(tree *ast.Tree, root ast.NodeID) error {
	var bad error
	tree.Walk(root, func(id ast.NodeID, n *ast.Node) bool {
		if bad != nil {
			return false
		}
		var want types.DeclKind
		switch n.Kind {
		case ast.FunctionDecl:
			want = types.DeclFunction
		case ast.Argument, ast.DeclarationStmt:
			want = types.DeclVariable
		default:
			if n.Decl != nil {
				bad = fmt.Errorf("node %d (%s): unexpected %s declarator", id, n.Kind, n.Decl.DeclKind())
			}
			return bad == nil
		}
		switch {
		case n.Decl == nil:
			bad = fmt.Errorf("node %d (%s %s): missing declarator", id, n.Kind, n.Name)
		case n.Decl.DeclKind() != want:
			bad = fmt.Errorf("node %d (%s %s): %s declarator, want %s", id, n.Kind, n.Name, n.Decl.DeclKind(), want)
		case n.Decl.DeclName() != n.Name:
			bad = fmt.Errorf("node %d (%s): declarator named %q, node named %q", id, n.Kind, n.Decl.DeclName(), n.Name)
		}
		return bad == nil
	})
	return bad
}

// CheckResultTypes verifies that every expression carries a result type and
// no statement does. The callee identifier of a call is exempt: it names a
// function, not a value.
func CheckResultTypes(tree *ast.Tree, root ast.NodeID) error {
	callees := make(map[ast.NodeID]bool)
	var bad error
	tree.Walk(root, func(id ast.NodeID, n *ast.Node) bool {
		if bad != nil {
			return false
		}
		if n.Kind == ast.FunctionCallExpr {
			callees[n.Child(0)] = true
		}
		switch {
		case callees[id]:
		case n.Kind.IsExpr() && n.Type == nil:
			bad = fmt.Errorf("node %d (%s): expression without result type", id, ast.NodeLabel(n))
		case !n.Kind.IsExpr() && n.Type != nil:
			bad = fmt.Errorf("node %d (%s): non-expression with result type", id, ast.NodeLabel(n))
		}
		return bad == nil
	})
	return bad
}
