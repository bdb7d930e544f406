package symbols

import (
	"nut/internal/ast"
	"nut/internal/types"
)

// WalkResolver finds declarations purely from tree shape:
//
//  1. builtin types;
//  2. the start node and each preceding sibling, nearest first, searching
//     every such subtree in pre-order for a node declaring the name;
//  3. the parameters of the start node when it is a function declaration;
//  4. the same procedure from the parent.
//
// It needs Parent/Prev links (link fixup) and revisits subtrees once per
// ancestor level, so lookups degrade with depth and width. ScopeIndex is
// the production resolver; this one is kept as a reference.
type WalkResolver struct {
	tree     *ast.Tree
	builtins *types.Builtins
}

func NewWalkResolver(tree *ast.Tree, builtins *types.Builtins) *WalkResolver {
	if builtins == nil {
		builtins = types.Default()
	}
	return &WalkResolver{tree: tree, builtins: builtins}
}

func (r *WalkResolver) Resolve(name string, at ast.NodeID) (types.Declarator, bool) {
	if t, ok := r.builtins.Lookup(name); ok {
		return t, true
	}
	for at.IsValid() {
		n := r.tree.Get(at)
		if n == nil {
			return nil, false
		}
		for it := at; it.IsValid(); it = r.tree.Get(it).Prev {
			if d := r.searchSubtree(name, it); d != nil {
				return d, true
			}
		}
		if n.Kind == ast.FunctionDecl {
			if fn, ok := n.Decl.(*types.Function); ok {
				for _, p := range fn.Params {
					if p.Name == name {
						return p, true
					}
				}
			}
		}
		at = n.Parent
	}
	return nil, false
}

func (r *WalkResolver) searchSubtree(name string, root ast.NodeID) types.Declarator {
	var found types.Declarator
	r.tree.Walk(root, func(_ ast.NodeID, n *ast.Node) bool {
		if found != nil {
			return false
		}
		if n.Decl != nil && n.Decl.DeclName() == name {
			found = n.Decl
			return false
		}
		return true
	})
	return found
}
