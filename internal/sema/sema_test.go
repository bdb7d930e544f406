package sema_test

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/sema"
	"nut/internal/symbols"
	"nut/internal/testkit"
	"nut/internal/types"
)

func TestAddFunctionIsClean(t *testing.T) {
	a := analyze(t, "int add(int a, int b) { return a + b; }", sema.Options{})
	be.Err(t, a.err, nil)
	be.Equal(t, a.res.Bag.Len(), 0)
	be.Equal(t, a.res.Passes, []string{"link", "declare", "calls", "types", "typecheck", "unused", "unreachable"})

	_, fnNode := a.find(ast.FunctionDecl)
	fn, ok := fnNode.Decl.(*types.Function)
	be.True(t, ok)
	be.Equal(t, fn.Arity(), 2)
	be.Equal(t, fn.Signature(), "int add(int, int)")

	_, sum := a.find(ast.AddExpr)
	be.True(t, sum.Type == types.Default().Int())

	be.Err(t, testkit.CheckLinks(a.tree, a.root), nil)
	be.Err(t, testkit.CheckDeclarators(a.tree, a.root), nil)
	be.Err(t, testkit.CheckResultTypes(a.tree, a.root), nil)
}

func TestInvariantsOnLargerProgram(t *testing.T) {
	src := `
void log(int v) {}
float scale(float x, float k) { return x * k; }
int twice(int n) { int r = n + n; log(r); return r; }
int main() {
	int a = twice(3);
	float s = scale(1.5, 2.0);
	a = a - -a;
	++a;
	log(twice(a) / 2);
	return a;
}
`
	a := analyze(t, src, sema.Options{})
	be.Err(t, a.err, nil)
	// assignment and increment statements drop their value
	be.Equal(t, a.warnings(), []string{
		"SEM3301 8:2 unused expression result",
		"SEM3301 9:2 unused expression result",
	})
	be.Err(t, testkit.CheckLinks(a.tree, a.root), nil)
	be.Err(t, testkit.CheckDeclarators(a.tree, a.root), nil)
	be.Err(t, testkit.CheckResultTypes(a.tree, a.root), nil)
	be.Err(t, testkit.CheckSpanInvariants(a.tree, a.root, a.fs.Get(0)), nil)
}

func TestArityMismatch(t *testing.T) {
	for _, tc := range []struct {
		call string
		msg  string
	}{
		{"add(1)", "'add' expects 2 arguments (1 given)"},
		{"add(1, 2, 3)", "'add' expects 2 arguments (3 given)"},
		{"add()", "'add' expects 2 arguments (0 given)"},
	} {
		t.Run(tc.call, func(t *testing.T) {
			src := "int add(int a, int b) { return a + b; }\nint f() { return " + tc.call + "; }"
			a := analyze(t, src, sema.Options{})
			be.Err(t, a.err, sema.ErrSemantic)
			d := a.semanticError(t)
			be.Equal(t, d.Code, diag.SemaArityMismatch)
			be.Equal(t, d.Message, tc.msg)
			be.Equal(t, a.pos(d.Primary), "2:18")
		})
	}
}

func TestTypeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
		msg  string
		pos  string
	}{
		{
			"float initializer for int", "void f() { int x = 1.0; }",
			diag.SemaInitializerMismatch, "incompatible initializer for 'x': expected 'int', got 'float'", "1:12",
		},
		{
			"void local", "void f() { void x; }",
			diag.SemaDeclaredVoid, "'x' declared void", "1:12",
		},
		{
			"void parameter", "void f(int a, void b) {}",
			diag.SemaDeclaredVoid, "'b' declared void", "1:15",
		},
		{
			"mixed operands", "void f(int a, float b) { int c = a + b; }",
			diag.SemaTypeMismatch, "incompatible types 'int' and 'float'", "1:36",
		},
		{
			"assign float to int", "void f(int a) { a = 2.5; }",
			diag.SemaTypeMismatch, "incompatible types 'int' and 'float'", "1:19",
		},
		{
			"argument type", "void g(int a, float b) {}\nvoid f() { g(1, 2); }",
			diag.SemaArgumentMismatch, "incompatible type for argument 2 of 'g': expected 'float', got 'int'", "2:17",
		},
		{
			"function as value", "int g() { return 1; }\nvoid f() { int x = g; }",
			diag.SemaNotAValue, "'g' is a function, not a variable", "2:20",
		},
		{
			"call a variable", "void f(int a) { a(); }",
			diag.SemaNotAFunction, "'a' is not a function", "1:17",
		},
		{
			"call a parenthesized name", "int g() { return 1; }\nvoid f() { (g)(); }",
			diag.SemaCallOnNonIdentifier, "function calls are only supported on identifiers", "2:12",
		},
		{
			"call a literal", "void f() { 1(); }",
			diag.SemaCallOnNonIdentifier, "function calls are only supported on identifiers", "1:12",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := analyze(t, tc.src, sema.Options{})
			d := a.semanticError(t)
			be.Equal(t, d.Code, tc.code)
			be.Equal(t, d.Message, tc.msg)
			be.Equal(t, a.pos(d.Primary), tc.pos)
			be.True(t, a.res.Bag.HasErrors())
		})
	}
}

func TestReturnChecks(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
		msg  string
	}{
		{"int f() { return; }", diag.SemaReturnExpectsValue, "this function expects a return value"},
		{"void g() {}\nint f() { return g(); }", diag.SemaReturnExpectsValue, "this function expects a return value"},
		{"void f() { return 1; }", diag.SemaReturnUnexpectedValue, "this function does not expect a return value"},
		{"int f() { return 1.5; }", diag.SemaReturnMismatch, "returning with incompatible type: expected 'int', got 'float'"},
		{"int f() { return 1; }", 0, ""},
		{"void f() { return; }", 0, ""},
		{"void g() {}\nvoid f() { return g(); }", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			a := analyze(t, tc.src, sema.Options{})
			if tc.code == 0 {
				be.Err(t, a.err, nil)
				return
			}
			d := a.semanticError(t)
			be.Equal(t, d.Code, tc.code)
			be.Equal(t, d.Message, tc.msg)
		})
	}
}

func TestUnusedResult(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"arithmetic", "void f() { 1+1; }", []string{"SEM3301 1:12 unused expression result"}},
		{"void call", "void g() {}\nvoid f() { g(); }", nil},
		{"int call", "int g() { return 1; }\nvoid f() { g(); }", []string{"SEM3301 2:12 unused expression result"}},
		{"parenthesized void call", "void g() {}\nvoid f() { (g()); }", nil},
		{"side effects", "void f(int x) { x = 1; ++x; --x; }", []string{
			"SEM3301 1:17 unused expression result",
			"SEM3301 1:24 unused expression result",
			"SEM3301 1:29 unused expression result",
		}},
		{"assigned call result", "int g() { return 1; }\nvoid f(int x) { x = g(); }", []string{"SEM3301 2:17 unused expression result"}},
		{"bare identifier", "void f(int x) { x; -x; }", []string{
			"SEM3301 1:17 unused expression result",
			"SEM3301 1:20 unused expression result",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := analyze(t, tc.src, sema.Options{})
			be.Err(t, a.err, nil)
			be.Equal(t, a.warnings(), tc.want)
		})
	}
}

func TestUnreachableCode(t *testing.T) {
	a := analyze(t, "void f() {\n  return;\n  int x;\n}", sema.Options{})
	be.Err(t, a.err, nil)
	be.Equal(t, a.warnings(), []string{"SEM3302 2:3 unreachable code after return"})

	a = analyze(t, "int f() { int x = 1; return x; }", sema.Options{})
	be.Err(t, a.err, nil)
	be.Equal(t, len(a.warnings()), 0)

	// two returns: only the first is followed by a statement
	a = analyze(t, "int f() { return 1; return 2; }", sema.Options{})
	be.Err(t, a.err, nil)
	be.Equal(t, a.warnings(), []string{"SEM3302 1:11 unreachable code after return"})
}

func TestDisableWarnings(t *testing.T) {
	src := "void f() { 1+1; return; 2; }"
	a := analyze(t, src, sema.Options{})
	be.Equal(t, len(a.warnings()), 3)

	a = analyze(t, src, sema.Options{DisableWarnings: map[diag.Code]bool{diag.SemaUnusedResult: true}})
	be.Equal(t, a.warnings(), []string{"SEM3302 1:17 unreachable code after return"})
}

func TestFatalErrorStopsPipeline(t *testing.T) {
	// declared void aborts type checking; the warning passes never run
	a := analyze(t, "void f() { void v; 1+1; }", sema.Options{})
	be.Err(t, a.err, sema.ErrSemantic)
	be.Equal(t, len(a.warnings()), 0)
	be.Equal(t, a.res.Passes, []string{"link", "declare", "calls", "types"})
	be.Equal(t, a.res.Bag.Count(diag.SevError), 1)
}

func TestNearestDeclarationWins(t *testing.T) {
	// the parameter x shadows the function x
	a := analyze(t, "int x() { return 1; }\nint g(int x) { return x + 1; }", sema.Options{})
	be.Err(t, a.err, nil)

	var ident *ast.Node
	var identID ast.NodeID
	a.tree.Walk(a.root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind == ast.IdentifierExpr && n.Name == "x" {
			ident, identID = n, id
		}
		return true
	})
	d, ok := a.res.Resolver.Resolve("x", identID)
	be.True(t, ok)
	be.Equal(t, d.DeclKind(), types.DeclVariable)
	be.True(t, ident.Type == types.Default().Int())

	// builtins cannot be shadowed: type names always resolve to the table entry
	d, ok = a.res.Resolver.Resolve("float", identID)
	be.True(t, ok)
	be.True(t, d == types.Declarator(types.Default().Float()))
}

func TestRecursionAndSelfInitializer(t *testing.T) {
	a := analyze(t, "int fact(int n) { int r = fact(n - 1) * n; return r; }", sema.Options{})
	be.Err(t, a.err, nil)

	a = analyze(t, "void f() { int v = v; }", sema.Options{})
	be.Err(t, a.err, nil)
	_, decl := a.find(ast.DeclarationStmt)
	be.True(t, decl.Child(1) != ast.NoNodeID)
	be.True(t, a.tree.Get(decl.Child(1)).Type == types.Default().Int())
}

func TestFreeAfterAnalysis(t *testing.T) {
	a := analyze(t, "int add(int a, int b) { return a + b; }", sema.Options{})
	be.Err(t, a.err, nil)
	_, fnNode := a.find(ast.FunctionDecl)
	fn := fnNode.Decl.(*types.Function)

	a.tree.Free(a.root)
	be.True(t, a.tree.Get(a.root).Freed())
	be.Equal(t, fn.Arity(), 0)
	be.True(t, fn.Return == nil)
}

func TestErrorStrings(t *testing.T) {
	a := analyze(t, "void f() { void x; }", sema.Options{})
	be.True(t, strings.HasPrefix(a.err.Error(), "semantic error: "))
}

func TestListChainArguments(t *testing.T) {
	const callee = "int g(int a, int b, int c) { return a + b + c; }\n"

	for _, kind := range []symbols.Kind{symbols.KindScope, symbols.KindWalk} {
		a := analyzeEdited(t, callee+"int f() { return g(1, 2, 3); }", sema.Options{Resolver: kind}, chainCallArgs)
		be.Err(t, a.err, nil)
		be.Equal(t, a.res.Bag.Len(), 0)
		be.Err(t, testkit.CheckLinks(a.tree, a.root), nil)
		be.Err(t, testkit.CheckResultTypes(a.tree, a.root), nil)

		callID, _ := a.find(ast.FunctionCallExpr)
		be.Equal(t, len(a.tree.CallArgs(callID)), 3)
		lists := 0
		a.tree.Walk(a.root, func(_ ast.NodeID, n *ast.Node) bool {
			if n.Kind == ast.ListExpr {
				lists++
				be.Equal(t, n.Type.Name, types.NameInt)
			}
			return true
		})
		be.Equal(t, lists, 2)
	}

	a := analyzeEdited(t, "int g(int a, int b) { return a; }\nint f() { return g(1, 2, 3); }", sema.Options{}, chainCallArgs)
	d := a.semanticError(t)
	be.Equal(t, d.Code, diag.SemaArityMismatch)
	be.Equal(t, d.Message, "'g' expects 2 arguments (3 given)")

	a = analyzeEdited(t, "int g(int a, float b, int c) { return a; }\nint f() { return g(1, 2, 3); }", sema.Options{}, chainCallArgs)
	d = a.semanticError(t)
	be.Equal(t, d.Code, diag.SemaArgumentMismatch)
	be.Equal(t, d.Message, "incompatible type for argument 2 of 'g': expected 'float', got 'int'")
	be.Equal(t, a.pos(d.Primary), "2:23")
}
