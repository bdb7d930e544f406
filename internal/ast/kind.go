package ast

import "fmt"

// Kind is the closed set of node kinds.
type Kind uint8

const (
	// KindFreed marks a tombstoned arena slot.
	KindFreed Kind = iota
	Program
	FunctionDecl
	ArgumentList
	Argument
	TypeSpecifier
	DeclarationStmt
	Statement
	StatementBlock
	ExprWrapper
	IdentifierExpr
	IntegerLiteralExpr
	FloatLiteralExpr
	FunctionCallExpr
	ListExpr
	IncExpr
	DecExpr
	NegExpr
	NotExpr
	AddExpr
	SubExpr
	MulExpr
	DivExpr
	AssignExpr
	ReturnStmt
)

var kindNames = [...]string{
	KindFreed:          "Freed",
	Program:            "Program",
	FunctionDecl:       "FunctionDecl",
	ArgumentList:       "ArgumentList",
	Argument:           "Argument",
	TypeSpecifier:      "TypeSpecifier",
	DeclarationStmt:    "DeclarationStmt",
	Statement:          "Statement",
	StatementBlock:     "StatementBlock",
	ExprWrapper:        "ExprWrapper",
	IdentifierExpr:     "IdentifierExpr",
	IntegerLiteralExpr: "IntegerLiteralExpr",
	FloatLiteralExpr:   "FloatLiteralExpr",
	FunctionCallExpr:   "FunctionCallExpr",
	ListExpr:           "ListExpr",
	IncExpr:            "IncExpr",
	DecExpr:            "DecExpr",
	NegExpr:            "NegExpr",
	NotExpr:            "NotExpr",
	AddExpr:            "AddExpr",
	SubExpr:            "SubExpr",
	MulExpr:            "MulExpr",
	DivExpr:            "DivExpr",
	AssignExpr:         "AssignExpr",
	ReturnStmt:         "ReturnStmt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsExpr reports whether nodes of this kind carry a result type after analysis.
// A ListExpr takes the type of its tail.
func (k Kind) IsExpr() bool {
	switch k {
	case ExprWrapper, IdentifierExpr, IntegerLiteralExpr, FloatLiteralExpr, FunctionCallExpr, ListExpr,
		IncExpr, DecExpr, NegExpr, NotExpr,
		AddExpr, SubExpr, MulExpr, DivExpr, AssignExpr:
		return true
	default:
		return false
	}
}

// IsUnary reports whether the kind is a prefix operator.
func (k Kind) IsUnary() bool {
	switch k {
	case IncExpr, DecExpr, NegExpr, NotExpr:
		return true
	default:
		return false
	}
}

// IsBinary reports whether the kind is an arithmetic or assignment operator.
func (k Kind) IsBinary() bool {
	switch k {
	case AddExpr, SubExpr, MulExpr, DivExpr, AssignExpr:
		return true
	default:
		return false
	}
}

// Declares reports whether nodes of this kind receive a declarator.
func (k Kind) Declares() bool {
	return k == DeclarationStmt || k == Argument || k == FunctionDecl
}
