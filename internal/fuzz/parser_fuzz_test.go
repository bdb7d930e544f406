package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/parser"
	"nut/internal/sema"
	"nut/internal/source"
	"nut/internal/symbols"
	"nut/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input.
// Longer runs indicate an infinite loop.
const parseTimeout = 5 * time.Second

type frontEnd struct {
	file *source.File
	tree *ast.Tree
	root ast.NodeID
	err  error
}

func parse(ctx context.Context, input []byte) frontEnd {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.nut", input))
	tree := ast.NewTree(0)
	bag := diag.NewBag(128)
	root, err := parser.ParseFile(ctx, file, tree, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return frontEnd{file: file, tree: tree, root: root, err: err}
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fe := parse(context.Background(), clampInput(input))
		if fe.err != nil {
			if !errors.Is(fe.err, parser.ErrSyntax) {
				t.Fatalf("parse error %v does not match ErrSyntax", fe.err)
			}
			return
		}
		if err := testkit.CheckLinks(fe.tree, fe.root); err != nil {
			t.Fatalf("links: %v", err)
		}
		if err := testkit.CheckSpanInvariants(fe.tree, fe.root, fe.file); err != nil {
			t.Fatalf("spans: %v", err)
		}
	})
}

// FuzzParserNoHang checks that the parser finishes on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("int f() { int x = 1\nint y = 2; }"))
	f.Add([]byte("int f() { x + y\nint z = 3; }"))
	f.Add([]byte("{ int x = 1 }"))
	f.Add([]byte("int f() { { { { } } } }"))
	f.Add([]byte("int f() { return ((((((1)))))); }"))
	f.Add([]byte("int f() { return f(f(f(f()))); }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parse(ctx, input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzAnalyzeParsedPrograms runs both resolvers over every tree the parser
// accepts. The analyzer may reject a program but must never break.
func FuzzAnalyzeParsedPrograms(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, kind := range []symbols.Kind{symbols.KindScope, symbols.KindWalk} {
			fe := parse(context.Background(), input)
			if fe.err != nil {
				return
			}
			res, err := sema.Analyze(context.Background(), fe.tree, fe.root, sema.Options{Resolver: kind})
			if res == nil {
				t.Fatalf("%s: nil result (err %v)", kind, err)
			}
			if errors.Is(err, sema.ErrInternal) {
				t.Fatalf("%s: internal error: %v\ninput: %q", kind, err, truncateForLog(input, 200))
			}
			if err != nil {
				continue
			}
			if err := testkit.CheckDeclarators(fe.tree, fe.root); err != nil {
				t.Fatalf("%s: declarators: %v", kind, err)
			}
			if err := testkit.CheckResultTypes(fe.tree, fe.root); err != nil {
				t.Fatalf("%s: result types: %v", kind, err)
			}
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
