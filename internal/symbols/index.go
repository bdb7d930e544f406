package symbols

import (
	"fmt"

	"nut/internal/ast"
	"nut/internal/types"
)

type snapshot struct {
	scope   ScopeID
	visible int
}

// ScopeIndex is a scope chain built once, in pre-order, alongside
// declarator creation. Every marked node remembers the innermost scope and
// how many of its entries were declared before the node, so a lookup is a
// walk up the chain with one map probe per level.
type ScopeIndex struct {
	builtins *types.Builtins
	scopes   *Scopes
	stack    []ScopeID
	marks    map[ast.NodeID]snapshot
	root     ScopeID
}

var _ ScopeBuilder = (*ScopeIndex)(nil)

// NewScopeIndex creates an index with an open file scope.
func NewScopeIndex(builtins *types.Builtins) *ScopeIndex {
	if builtins == nil {
		builtins = types.Default()
	}
	idx := &ScopeIndex{
		builtins: builtins,
		scopes:   NewScopes(0),
		marks:    make(map[ast.NodeID]snapshot),
	}
	idx.root = idx.scopes.New(ScopeFile, NoScopeID, 0, ast.NoNodeID)
	idx.stack = append(idx.stack, idx.root)
	return idx
}

func (idx *ScopeIndex) current() ScopeID {
	return idx.stack[len(idx.stack)-1]
}

// Enter opens a child of the current scope.
func (idx *ScopeIndex) Enter(kind ScopeKind, owner ast.NodeID) {
	parent := idx.current()
	visible := len(idx.scopes.Get(parent).Entries)
	idx.stack = append(idx.stack, idx.scopes.New(kind, parent, visible, owner))
}

// Leave closes the current scope. The file scope cannot be closed.
func (idx *ScopeIndex) Leave() {
	if len(idx.stack) == 1 {
		panic(fmt.Errorf("symbols: can't leave the file scope"))
	}
	idx.stack = idx.stack[:len(idx.stack)-1]
}

// Declare appends a declaration to the current scope.
func (idx *ScopeIndex) Declare(name string, decl types.Declarator, node ast.NodeID) {
	idx.scopes.Get(idx.current()).add(Entry{Name: name, Decl: decl, Node: node})
}

// Mark records what is visible at node right now.
func (idx *ScopeIndex) Mark(node ast.NodeID) {
	cur := idx.current()
	idx.marks[node] = snapshot{scope: cur, visible: len(idx.scopes.Get(cur).Entries)}
}

// Resolve looks name up from the snapshot taken at node at.
// Unmarked nodes resolve builtins only.
func (idx *ScopeIndex) Resolve(name string, at ast.NodeID) (types.Declarator, bool) {
	if t, ok := idx.builtins.Lookup(name); ok {
		return t, true
	}
	snap, ok := idx.marks[at]
	if !ok {
		return nil, false
	}
	id, visible := snap.scope, snap.visible
	for id.IsValid() {
		s := idx.scopes.Get(id)
		if e, ok := s.lookup(name, visible); ok {
			return e.Decl, true
		}
		id, visible = s.Parent, s.ParentVisible
	}
	return nil, false
}

// ScopeOf returns the innermost scope recorded for node.
func (idx *ScopeIndex) ScopeOf(node ast.NodeID) (*Scope, bool) {
	snap, ok := idx.marks[node]
	if !ok {
		return nil, false
	}
	return idx.scopes.Get(snap.scope), true
}

// Scopes exposes the arena for inspection (ast dumps, tests).
func (idx *ScopeIndex) Scopes() *Scopes { return idx.scopes }

// Depth returns the number of open scopes, the file scope included.
func (idx *ScopeIndex) Depth() int { return len(idx.stack) }
