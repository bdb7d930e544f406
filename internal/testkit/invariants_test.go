package testkit

import (
	"strings"
	"testing"

	"nut/internal/ast"
	"nut/internal/source"
	"nut/internal/types"
)

func TestCheckLinksDetectsStaleSibling(t *testing.T) {
	tree := ast.NewTree(0)
	root := tree.New(ast.StatementBlock, source.Span{})
	a := tree.New(ast.Statement, source.Span{})
	b := tree.New(ast.Statement, source.Span{})
	tree.AddChild(root, a)
	tree.AddChild(root, b)

	tree.Get(a).Parent, tree.Get(a).Next = root, b
	tree.Get(b).Parent, tree.Get(b).Prev = root, a
	if err := CheckLinks(tree, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tree.Get(b).Next = a
	err := CheckLinks(tree, root)
	if err == nil || !strings.Contains(err.Error(), "next=") {
		t.Fatalf("expected next mismatch, got %v", err)
	}
}

func TestCheckDeclaratorsAndTypes(t *testing.T) {
	tree := ast.NewTree(0)
	decl := tree.NewNamed(ast.DeclarationStmt, source.Span{}, "x")
	lit := tree.NewLiteral(ast.IntegerLiteralExpr, source.Span{}, "1")
	tree.AddChild(decl, tree.NewNamed(ast.TypeSpecifier, source.Span{}, "int"))
	tree.AddChild(decl, lit)

	if err := CheckDeclarators(tree, decl); err == nil {
		t.Fatalf("missing declarator must be reported")
	}
	tree.Get(decl).Decl = types.NewFunction("x")
	if err := CheckDeclarators(tree, decl); err == nil || !strings.Contains(err.Error(), "function declarator") {
		t.Fatalf("kind mismatch must be reported, got %v", err)
	}
	tree.Get(decl).Decl = types.NewVariable("x")
	if err := CheckDeclarators(tree, decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := CheckResultTypes(tree, decl); err == nil {
		t.Fatalf("untyped literal must be reported")
	}
	tree.Get(lit).Type = types.Default().Int()
	if err := CheckResultTypes(tree, decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("s.nut", []byte("int f() {}")))
	tree := ast.NewTree(0)
	root := tree.New(ast.Program, source.Span{File: f.ID, Start: 0, End: 3})
	if err := CheckSpanInvariants(tree, root, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree.AddChild(root, tree.New(ast.FunctionDecl, source.Span{File: f.ID, Start: 4, End: 40}))
	if err := CheckSpanInvariants(tree, root, f); err == nil {
		t.Fatalf("span past the end must be reported")
	}
}
