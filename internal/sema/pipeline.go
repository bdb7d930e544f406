package sema

import (
	"context"
	"fmt"

	"nut/internal/ast"
	"nut/internal/trace"
)

// Pass is one full traversal of the tree. Every pass may assume all passes
// before it in DefaultPasses completed without error.
type Pass interface {
	Name() string
	Run(c *Context) error
}

// DefaultPasses returns the fixed pipeline in execution order.
func DefaultPasses() []Pass {
	return []Pass{
		LinkPass{},
		DeclarePass{},
		CallPass{},
		ResultTypePass{},
		TypeCheckPass{},
		UnusedResultPass{},
		UnreachablePass{},
	}
}

// Analyze runs DefaultPasses over the tree rooted at root. The tree is
// annotated in place; after an error it is partially annotated and must be
// discarded. The returned Result is non-nil whenever the options are valid.
func Analyze(ctx context.Context, tree *ast.Tree, root ast.NodeID, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "sema")
	defer span.End("")

	c, err := NewContext(ctx, tree, root, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Bag: c.Bag, Resolver: c.Resolver}
	for _, p := range DefaultPasses() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		done := opts.Timer.Track("sema/" + p.Name())
		err := RunPass(ctx, c, p)
		done("")
		if err != nil {
			span.WithExtra("failed", p.Name())
			return res, err
		}
		res.Passes = append(res.Passes, p.Name())
	}
	span.WithExtra("warnings", fmt.Sprint(c.Bag.Len()))
	return res, nil
}

// RunPass runs a single pass inside its own trace span. A panic inside the
// pass is converted to an *InternalError.
func RunPass(ctx context.Context, c *Context, p Pass) (err error) {
	pctx, span := trace.Start(ctx, trace.ScopePass, "sema/"+p.Name())
	prevCtx := c.ctx
	c.ctx, c.pass = pctx, p.Name()
	defer func() {
		if r := recover(); r != nil {
			err = c.internal(c.Root, "panic: %v", r)
		}
		c.ctx, c.pass = prevCtx, ""
		if err != nil {
			span.End("error")
			return
		}
		span.End("")
	}()
	return p.Run(c)
}
