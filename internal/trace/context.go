package trace

import "context"

type ctxKey struct{}

// carrier is what a context holds: the tracer and the innermost open span.
type carrier struct {
	tracer Tracer
	span   uint64
}

func carried(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carried(ctx).tracer
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carrier{tracer: t})
}

// ParentSpan returns the ID of the innermost span started through ctx,
// 0 outside any span.
func ParentSpan(ctx context.Context) uint64 {
	return carried(ctx).span
}

func withSpan(ctx context.Context, id uint64) context.Context {
	c := carried(ctx)
	c.span = id
	return context.WithValue(ctx, ctxKey{}, c)
}
