package symbols

import (
	"nut/internal/ast"
	"nut/internal/types"
)

// Resolver maps a name at a tree position to the visible declarator.
// Builtin type names always win and can never be shadowed.
type Resolver interface {
	Resolve(name string, at ast.NodeID) (types.Declarator, bool)
}

// ScopeBuilder is implemented by resolvers that must be fed declarations in
// pre-order while declarators are being created.
type ScopeBuilder interface {
	Resolver
	Enter(kind ScopeKind, owner ast.NodeID)
	Leave()
	Declare(name string, decl types.Declarator, node ast.NodeID)
	Mark(node ast.NodeID)
}

// Kind names a resolver implementation.
type Kind string

const (
	KindScope Kind = "scope"
	KindWalk  Kind = "walk"
)

// ParseKind validates a resolver name; the empty string selects KindScope.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case "", KindScope:
		return KindScope, true
	case KindWalk:
		return KindWalk, true
	default:
		return "", false
	}
}

// New builds a fresh resolver of the given kind over tree.
func New(kind Kind, tree *ast.Tree, builtins *types.Builtins) Resolver {
	if kind == KindWalk {
		return NewWalkResolver(tree, builtins)
	}
	return NewScopeIndex(builtins)
}
