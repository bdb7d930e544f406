package ast

import (
	"nut/internal/source"
	"nut/internal/types"
)

// Node is one tree node. Children own their nodes; Parent, Prev and Next are
// non-owning links filled in by link fixup and recomputed whenever children change.
//
// Layout by kind:
//
//	Program          children: FunctionDecl*
//	FunctionDecl     Name; children: TypeSpecifier, ArgumentList, StatementBlock
//	ArgumentList     children: Argument*
//	Argument         Name; children: TypeSpecifier
//	TypeSpecifier    Name
//	DeclarationStmt  Name; children: TypeSpecifier [, initializer expr]
//	Statement        children: DeclarationStmt | ReturnStmt | ExprWrapper
//	StatementBlock   children: Statement*
//	ExprWrapper      children: expr
//	IdentifierExpr   Name
//	*LiteralExpr     Value
//	FunctionCallExpr children: IdentifierExpr callee, args...
//	ListExpr         children: head, tail (legacy argument chain)
//	unary            children: operand
//	binary           children: lhs, rhs
//	ReturnStmt       children: [expr]
type Node struct {
	Kind     Kind
	Name     string
	Value    string
	Span     source.Span
	Children []NodeID

	Parent NodeID
	Prev   NodeID
	Next   NodeID

	Decl types.Declarator
	Type *types.Type
}

// Child returns the i-th child or NoNodeID.
func (n *Node) Child(i int) NodeID {
	if n == nil || i < 0 || i >= len(n.Children) {
		return NoNodeID
	}
	return n.Children[i]
}

// Freed reports whether the slot was torn down by Tree.Free.
func (n *Node) Freed() bool { return n.Kind == KindFreed }
