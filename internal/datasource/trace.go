package datasource

import (
	"context"
	"sync/atomic"
)

// Trace records whether any read of a request was answered by the fallback
// dataset.  The HTTP layer attaches one per request.
type Trace struct {
	fallback atomic.Bool
}

type traceKey struct{}

// WithTrace returns a child context carrying a fresh Trace.
func WithTrace(ctx context.Context) (context.Context, *Trace) {
	t := &Trace{}
	return context.WithValue(ctx, traceKey{}, t), t
}

// MarkFallback flags the request's trace, if any.
func MarkFallback(ctx context.Context) {
	if t, ok := ctx.Value(traceKey{}).(*Trace); ok {
		t.fallback.Store(true)
	}
}

// Name is "fallback" once any read fell back and "live" otherwise.
func (t *Trace) Name() string {
	if t != nil && t.fallback.Load() {
		return NameFallback
	}
	return NameLive
}
