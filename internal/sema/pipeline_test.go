package sema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/observ"
	"nut/internal/sema"
	"nut/internal/source"
	"nut/internal/testkit"
	"nut/internal/trace"
)

func TestLinkPassAlone(t *testing.T) {
	a := analyze(t, "int f(int a) { int b = a; return b; }\nvoid g() {}", sema.Options{})
	be.Err(t, a.err, nil)

	// relink a fresh context over the same tree after scrambling links
	a.tree.Walk(a.root, func(_ ast.NodeID, n *ast.Node) bool {
		n.Parent, n.Prev, n.Next = 99, 98, 97
		return true
	})
	c, err := sema.NewContext(context.Background(), a.tree, a.root, sema.Options{})
	be.Err(t, err, nil)
	be.Err(t, sema.RunPass(context.Background(), c, sema.LinkPass{}), nil)
	be.Err(t, testkit.CheckLinks(a.tree, a.root), nil)
	be.Equal(t, a.tree.Get(a.root).Parent, ast.NoNodeID)
}

// undeclaredCall builds "void f() { g(); }" by hand, bypassing the parser's
// undeclared-identifier check.
func undeclaredCall() (*ast.Tree, ast.NodeID) {
	sp := source.Span{}
	tree := ast.NewTree(0)
	root := tree.New(ast.Program, sp)
	fn := tree.NewNamed(ast.FunctionDecl, sp, "f")
	tree.AddChild(root, fn)
	tree.AddChild(fn, tree.NewNamed(ast.TypeSpecifier, sp, "void"))
	tree.AddChild(fn, tree.New(ast.ArgumentList, sp))
	block := tree.New(ast.StatementBlock, sp)
	tree.AddChild(fn, block)
	stmt := tree.New(ast.Statement, sp)
	tree.AddChild(block, stmt)
	wrap := tree.New(ast.ExprWrapper, sp)
	tree.AddChild(stmt, wrap)
	call := tree.New(ast.FunctionCallExpr, sp)
	tree.AddChild(wrap, call)
	tree.AddChild(call, tree.NewNamed(ast.IdentifierExpr, sp, "g"))
	return tree, root
}

func TestUnresolvedCalleeIsInternal(t *testing.T) {
	tree, root := undeclaredCall()
	res, err := sema.Analyze(context.Background(), tree, root, sema.Options{})
	be.Err(t, err, sema.ErrInternal)
	be.True(t, !errors.Is(err, sema.ErrSemantic))

	var ie *sema.InternalError
	be.True(t, errors.As(err, &ie))
	be.Equal(t, ie.Pass, "calls")
	be.Equal(t, res.Bag.Items()[0].Code, diag.SemaInternal)
}

func TestUnknownTypeName(t *testing.T) {
	sp := source.Span{}
	tree := ast.NewTree(0)
	root := tree.New(ast.Program, sp)
	fn := tree.NewNamed(ast.FunctionDecl, sp, "f")
	tree.AddChild(root, fn)
	tree.AddChild(fn, tree.NewNamed(ast.TypeSpecifier, sp, "num"))
	tree.AddChild(fn, tree.New(ast.ArgumentList, sp))
	tree.AddChild(fn, tree.New(ast.StatementBlock, sp))

	_, err := sema.Analyze(context.Background(), tree, root, sema.Options{})
	var se *sema.SemanticError
	be.True(t, errors.As(err, &se))
	be.Equal(t, se.Diag.Code, diag.SemaUnresolvedType)
	be.Equal(t, se.Diag.Message, "'num' does not name a type")
}

type panicPass struct{}

func (panicPass) Name() string { return "boom" }

func (panicPass) Run(*sema.Context) error { panic("broken invariant") }

func TestPanicBecomesInternalError(t *testing.T) {
	tree, root := undeclaredCall()
	c, err := sema.NewContext(context.Background(), tree, root, sema.Options{})
	be.Err(t, err, nil)
	err = sema.RunPass(context.Background(), c, panicPass{})
	be.Err(t, err, sema.ErrInternal)
	var ie *sema.InternalError
	be.True(t, errors.As(err, &ie))
	be.Equal(t, ie.Pass, "boom")
}

func TestOptionsValidation(t *testing.T) {
	tree, root := undeclaredCall()
	_, err := sema.Analyze(context.Background(), tree, root, sema.Options{Resolver: "magic"})
	be.True(t, err != nil)
	be.True(t, !errors.Is(err, sema.ErrInternal))
}

func TestCancelledContext(t *testing.T) {
	tree, root := undeclaredCall()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := sema.Analyze(ctx, tree, root, sema.Options{})
	be.Err(t, err, context.Canceled)
	be.Equal(t, len(res.Passes), 0)
}

func TestTimerAndTrace(t *testing.T) {
	timer := observ.NewTimer()
	ring := trace.NewRingTracer(256, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	a := analyze(t, "int f() { return 1; }", sema.Options{})
	be.Err(t, a.err, nil)

	res, err := sema.Analyze(ctx, a.tree, a.root, sema.Options{Timer: timer})
	be.Err(t, err, nil)
	be.Equal(t, len(timer.Report().Phases), len(res.Passes))

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	be.Equal(t, names[0], "sema")
	be.Equal(t, names[1], "sema/link")
	be.Equal(t, len(names), 8)
}
