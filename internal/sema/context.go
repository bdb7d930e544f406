package sema

import (
	"context"
	"fmt"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/source"
	"nut/internal/symbols"
	"nut/internal/trace"
	"nut/internal/types"
)

// Context is the state shared by the passes of one run.
type Context struct {
	Tree     *ast.Tree
	Root     ast.NodeID
	Builtins *types.Builtins
	Resolver symbols.Resolver
	Bag      *diag.Bag

	ctx      context.Context
	reporter diag.Reporter
	disabled map[diag.Code]bool
	pass     string
}

// NewContext prepares a run over the tree rooted at root.
func NewContext(ctx context.Context, tree *ast.Tree, root ast.NodeID, opts Options) (*Context, error) {
	kind, ok := symbols.ParseKind(string(opts.Resolver))
	if !ok {
		return nil, fmt.Errorf("unknown resolver %q (expected scope|walk)", opts.Resolver)
	}
	if opts.Builtins == nil {
		opts.Builtins = types.Default()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		rep = diag.MultiReporter{rep, opts.Reporter}
	}
	return &Context{
		Tree:     tree,
		Root:     root,
		Builtins: opts.Builtins,
		Resolver: symbols.New(kind, tree, opts.Builtins),
		Bag:      bag,
		ctx:      ctx,
		reporter: rep,
		disabled: opts.DisableWarnings,
	}, nil
}

// Resolve looks name up from node at.
func (c *Context) Resolve(name string, at ast.NodeID) (types.Declarator, bool) {
	d, ok := c.Resolver.Resolve(name, at)
	if trace.FromContext(c.ctx).Level() >= trace.LevelDebug {
		detail := name + " -> <none>"
		if ok {
			detail = name + " -> " + d.DeclKind().String()
		}
		trace.Point(c.ctx, trace.ScopeNode, "resolve", detail)
	}
	return d, ok
}

// node returns the node or an internal error naming the bad handle.
func (c *Context) node(id ast.NodeID) (*ast.Node, error) {
	n := c.Tree.Get(id)
	if n == nil || n.Freed() {
		return nil, c.internal(id, "dangling node handle")
	}
	return n, nil
}

// fail reports a fatal diagnostic at node id and returns it as an error.
func (c *Context) fail(code diag.Code, id ast.NodeID, format string, args ...any) error {
	d := diag.ReportError(c.reporter, code, c.span(id), fmt.Sprintf(format, args...))
	return &SemanticError{Diag: d}
}

// warn reports a non-fatal diagnostic unless its code is disabled.
func (c *Context) warn(code diag.Code, id ast.NodeID, msg string) {
	if c.disabled[code] {
		return
	}
	diag.ReportWarning(c.reporter, code, c.span(id), msg)
}

func (c *Context) internal(id ast.NodeID, format string, args ...any) error {
	err := &InternalError{Pass: c.pass, Node: id, Msg: fmt.Sprintf(format, args...)}
	diag.ReportError(c.reporter, diag.SemaInternal, c.span(id), err.Error())
	return err
}

func (c *Context) span(id ast.NodeID) source.Span {
	if n := c.Tree.Get(id); n != nil {
		return n.Span
	}
	return source.Span{}
}
