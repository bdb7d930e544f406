package ast

import (
	"fmt"

	"nut/internal/source"
	"nut/internal/types"
)

// Tree is an arena of nodes addressed by NodeID.
type Tree struct {
	nodes *Arena[Node, NodeID]
}

// NewTree creates an empty tree; capHint pre-sizes the arena.
func NewTree(capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{nodes: NewArena[Node, NodeID](capHint)}
}

// New allocates a detached node.
func (t *Tree) New(kind Kind, span source.Span) NodeID {
	return t.nodes.Allocate(Node{Kind: kind, Span: span})
}

// NewNamed allocates a detached node carrying a name.
func (t *Tree) NewNamed(kind Kind, span source.Span, name string) NodeID {
	id := t.New(kind, span)
	t.nodes.Get(id).Name = name
	return id
}

// NewLiteral allocates a detached literal node carrying its source text.
func (t *Tree) NewLiteral(kind Kind, span source.Span, value string) NodeID {
	id := t.New(kind, span)
	t.nodes.Get(id).Value = value
	return id
}

// Get returns the node or nil for NoNodeID and unknown handles.
func (t *Tree) Get(id NodeID) *Node {
	return t.nodes.Get(id)
}

// Len returns the number of allocated slots, freed ones included.
func (t *Tree) Len() int {
	return int(t.nodes.Len())
}

// AddChild appends child at the end of parent's children.
// Links are left untouched; link fixup derives them.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.Get(parent)
	if p == nil {
		panic(fmt.Sprintf("ast: AddChild on unknown node %d", parent))
	}
	if t.Get(child) == nil {
		panic(fmt.Sprintf("ast: AddChild with unknown child %d", child))
	}
	p.Children = append(p.Children, child)
}

// Free tears a subtree down: children first, then the node's declarator,
// then the node itself. Freed slots are tombstoned and never reused.
func (t *Tree) Free(id NodeID) {
	n := t.Get(id)
	if n == nil || n.Freed() {
		return
	}
	for _, c := range n.Children {
		t.Free(c)
	}
	if n.Decl != nil {
		types.Release(n.Decl)
	}
	*n = Node{Kind: KindFreed}
}

// Walk visits the subtree rooted at id in pre-order. Returning false from
// visit skips the node's children.
func (t *Tree) Walk(id NodeID, visit func(NodeID, *Node) bool) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !visit(id, n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, visit)
	}
}

// CallArgs returns the actual arguments of a FunctionCallExpr in order.
// Arguments stored as a ListExpr chain (head, tail) are flattened.
func (t *Tree) CallArgs(call NodeID) []NodeID {
	n := t.Get(call)
	if n == nil || n.Kind != FunctionCallExpr || len(n.Children) < 2 {
		return nil
	}
	args := make([]NodeID, 0, len(n.Children)-1)
	for _, a := range n.Children[1:] {
		args = t.appendListChain(args, a)
	}
	return args
}

func (t *Tree) appendListChain(out []NodeID, id NodeID) []NodeID {
	for {
		n := t.Get(id)
		if n == nil || n.Kind != ListExpr {
			return append(out, id)
		}
		out = append(out, n.Child(0))
		id = n.Child(1)
	}
}

// EnclosingFunction walks parent links up to the nearest FunctionDecl.
func (t *Tree) EnclosingFunction(id NodeID) NodeID {
	for n := t.Get(id); n != nil; n = t.Get(id) {
		if n.Kind == FunctionDecl {
			return id
		}
		id = n.Parent
	}
	return NoNodeID
}
