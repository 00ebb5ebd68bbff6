package vision

import "context"

// DescribeFunc is the function form of Provider.
type DescribeFunc func(ctx context.Context, request Request) (*Response, error)

// Describe calls f.
func (f DescribeFunc) Describe(ctx context.Context, request Request) (*Response, error) {
	return f(ctx, request)
}

// Middleware wraps a DescribeFunc with extra behavior such as retries,
// deadlines or logging.
type Middleware func(next DescribeFunc) DescribeFunc

// Chain wraps provider with middlewares. The first middleware is the
// outermost, so it runs first on the way in and last on the way out.
func Chain(provider Provider, middlewares ...Middleware) Provider {
	chain := DescribeFunc(provider.Describe)
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}
