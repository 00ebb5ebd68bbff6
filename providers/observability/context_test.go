package observability

import (
	"context"
	"testing"
)

type stubSpan struct{ name string }

func (s *stubSpan) End()                          {}
func (s *stubSpan) SetAttributes(...Attribute)    {}
func (s *stubSpan) SetStatus(StatusCode, string)  {}
func (s *stubSpan) RecordError(error)             {}
func (s *stubSpan) AddEvent(string, ...Attribute) {}

type stubProvider struct{ label string }

func (p *stubProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nil
}
func (p *stubProvider) Counter(string) Counter                      { return nil }
func (p *stubProvider) Histogram(string) Histogram                  { return nil }
func (p *stubProvider) Trace(context.Context, string, ...Attribute) {}
func (p *stubProvider) Debug(context.Context, string, ...Attribute) {}
func (p *stubProvider) Info(context.Context, string, ...Attribute)  {}
func (p *stubProvider) Warn(context.Context, string, ...Attribute)  {}
func (p *stubProvider) Error(context.Context, string, ...Attribute) {}

func TestSpanContext(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("SpanFromContext(empty) = %v, want nil", span)
	}

	first := &stubSpan{name: "first"}
	second := &stubSpan{name: "second"}

	ctx := ContextWithSpan(context.Background(), first)
	if got := SpanFromContext(ctx); got != first {
		t.Errorf("SpanFromContext() = %v, want %v", got, first)
	}

	ctx = ContextWithSpan(ctx, second)
	if got := SpanFromContext(ctx); got != second {
		t.Errorf("SpanFromContext() after overwrite = %v, want %v", got, second)
	}
}

func TestSpanFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), spanKey, "not a span")
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("SpanFromContext() = %v, want nil", span)
	}
}

func TestObserverContext(t *testing.T) {
	if p := ObserverFromContext(context.Background()); p != nil {
		t.Errorf("ObserverFromContext(empty) = %v, want nil", p)
	}

	p := &stubProvider{label: "batch"}
	ctx := ContextWithObserver(context.Background(), p)
	ctx = ContextWithSpan(ctx, &stubSpan{name: "unrelated"})

	if got := ObserverFromContext(ctx); got != p {
		t.Errorf("ObserverFromContext() = %v, want %v", got, p)
	}
}

func TestNilContext(t *testing.T) {
	//nolint:staticcheck // nil context on purpose
	if SpanFromContext(nil) != nil || ObserverFromContext(nil) != nil {
		t.Error("lookups on a nil context should return nil")
	}

	//nolint:staticcheck // nil context on purpose
	ctx := ContextWithObserver(nil, &stubProvider{})
	if ctx == nil {
		t.Fatal("ContextWithObserver(nil, p) returned nil context")
	}
}
