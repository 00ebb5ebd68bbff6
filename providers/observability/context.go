package observability

import "context"

type contextKey int

const (
	spanKey contextKey = iota
	observerKey
)

// SpanFromContext returns the active span, or nil.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanKey).(Span)
	return span
}

// ContextWithSpan returns a copy of ctx carrying span.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey, span)
}

// ObserverFromContext returns the Provider stored by ContextWithObserver, or
// nil.
func ObserverFromContext(ctx context.Context) Provider {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(observerKey).(Provider)
	return p
}

// ContextWithObserver returns a copy of ctx carrying p. Vision providers use
// it to log through the observer of the batch that called them.
func ContextWithObserver(ctx context.Context, p Provider) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, observerKey, p)
}
