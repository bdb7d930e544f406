package sema_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/parser"
	"nut/internal/sema"
	"nut/internal/source"
)

type analyzed struct {
	fs   *source.FileSet
	tree *ast.Tree
	root ast.NodeID
	res  *sema.Result
	err  error
}

func analyze(t *testing.T, src string, opts sema.Options) analyzed {
	t.Helper()
	return analyzeEdited(t, src, opts, nil)
}

// analyzeEdited lets edit reshape the parsed tree before analysis.
func analyzeEdited(t *testing.T, src string, opts sema.Options, edit func(*ast.Tree, ast.NodeID)) analyzed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.nut", []byte(src))
	tree := ast.NewTree(0)
	root, err := parser.ParseFile(context.Background(), fs.Get(id), tree, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if edit != nil {
		edit(tree, root)
	}
	res, err := sema.Analyze(context.Background(), tree, root, opts)
	return analyzed{fs: fs, tree: tree, root: root, res: res, err: err}
}

// semanticError asserts a fatal semantic error and returns its diagnostic.
func (a analyzed) semanticError(t *testing.T) diag.Diagnostic {
	t.Helper()
	var se *sema.SemanticError
	if !errors.As(a.err, &se) {
		t.Fatalf("expected *SemanticError, got %v", a.err)
	}
	return se.Diag
}

func (a analyzed) pos(sp source.Span) string {
	start, _ := a.fs.Resolve(sp)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}

// warnings returns "code line:col msg" for every warning in the bag.
func (a analyzed) warnings() []string {
	var out []string
	for _, d := range a.res.Bag.Items() {
		if d.Severity == diag.SevWarning {
			out = append(out, fmt.Sprintf("%s %s %s", d.Code.ID(), a.pos(d.Primary), d.Message))
		}
	}
	return out
}

// find returns the first node of kind in pre-order.
func (a analyzed) find(kind ast.Kind) (ast.NodeID, *ast.Node) {
	var (
		foundID ast.NodeID
		found   *ast.Node
	)
	a.tree.Walk(a.root, func(id ast.NodeID, n *ast.Node) bool {
		if found == nil && n.Kind == kind {
			foundID, found = id, n
		}
		return found == nil
	})
	return foundID, found
}

// chainCallArgs rewrites the arguments of every call into a right-leaning
// ListExpr chain: g(1, 2, 3) becomes g(List(1, List(2, 3))).
func chainCallArgs(tree *ast.Tree, root ast.NodeID) {
	var calls []ast.NodeID
	tree.Walk(root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind == ast.FunctionCallExpr && len(n.Children) > 2 {
			calls = append(calls, id)
		}
		return true
	})
	for _, call := range calls {
		n := tree.Get(call)
		args := append([]ast.NodeID(nil), n.Children[1:]...)
		n.Children = n.Children[:1]
		tail := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			list := tree.New(ast.ListExpr, tree.Get(args[i]).Span.Cover(tree.Get(tail).Span))
			tree.AddChild(list, args[i])
			tree.AddChild(list, tail)
			tail = list
		}
		tree.AddChild(call, tail)
	}
}
