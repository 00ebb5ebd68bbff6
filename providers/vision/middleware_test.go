package vision

import (
	"context"
	"reflect"
	"testing"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	record := func(name string) Middleware {
		return func(next DescribeFunc) DescribeFunc {
			return func(ctx context.Context, request Request) (*Response, error) {
				calls = append(calls, name+" in")
				resp, err := next(ctx, request)
				calls = append(calls, name+" out")
				return resp, err
			}
		}
	}
	base := DescribeFunc(func(context.Context, Request) (*Response, error) {
		calls = append(calls, "provider")
		return &Response{Content: "ok"}, nil
	})

	resp, err := Chain(base, record("outer"), record("inner")).Describe(context.Background(), Request{})
	if err != nil || resp.Content != "ok" {
		t.Fatalf("Describe() = %v, %v", resp, err)
	}

	want := []string{"outer in", "inner in", "provider", "inner out", "outer out"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	base := DescribeFunc(func(context.Context, Request) (*Response, error) {
		return &Response{Content: "plain"}, nil
	})
	resp, err := Chain(base).Describe(context.Background(), Request{})
	if err != nil || resp.Content != "plain" {
		t.Errorf("Describe() = %v, %v", resp, err)
	}
}
