package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/source"
	"nut/internal/testkit"
)

type parsed struct {
	fs   *source.FileSet
	tree *ast.Tree
	root ast.NodeID
	bag  *diag.Bag
	err  error
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.nut", []byte(input))
	bag := diag.NewBag(100)
	tree := ast.NewTree(0)
	root, err := ParseFile(context.Background(), fs.Get(fileID), tree, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{fs: fs, tree: tree, root: root, bag: bag, err: err}
}

func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	res := parseSource(t, input)
	if res.err != nil {
		t.Fatalf("unexpected parse error: %v (%s)", res.err, diagnosticsSummary(res.bag))
	}
	if err := testkit.CheckSpanInvariants(res.tree, res.root, res.fs.Get(0)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return res
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// position returns "line:col" of the error's primary span.
func (r parsed) position(t *testing.T) string {
	t.Helper()
	if r.err == nil {
		t.Fatalf("expected a parse error")
	}
	perr, ok := r.err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", r.err)
	}
	start, _ := r.fs.Resolve(perr.Diag.Primary)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}
